package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/internal/config"
	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

const fixture = `[
  {"_id": 1, "operator": "DraftKings", "operatorGameType": "Classic", "operatorName": "Main",
   "dfsSlatePlayers": [
     {"slatePlayerId": 1, "operatorPlayerName": "A", "operatorPosition": "QB", "operatorSalary": 9000, "team": "KC", "fantasyPoints": 28.5},
     {"slatePlayerId": 2, "operatorPlayerName": "B", "operatorPosition": "D/ST", "operatorSalary": 3000, "team": "KC", "fantasyPoints": 7}
   ]},
  {"_id": 2, "operator": "FanDuel", "operatorGameType": "Single Game", "operatorName": "Night", "dfsSlatePlayers": []}
]`

func TestMain(m *testing.M) {
	zap.ReplaceGlobals(zap.NewNop())
	os.Exit(m.Run())
}

func TestLoadIndexFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0644))

	index, err := loadIndex(context.Background(), config.DatasetConfig{Source: config.SourceFile, Path: path})
	require.NoError(t, err)

	assert.Equal(t, []string{"DraftKings", "FanDuel"}, index.Operators())
	assert.Len(t, index.Players("DraftKings", "Classic", "Main"), 1)
}

func TestLoadIndexMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	index, err := loadIndex(context.Background(), config.DatasetConfig{Source: config.SourceFile, Path: path})
	require.NoError(t, err)
	assert.Empty(t, index.Operators())
}

func TestOpenSourceRejectsUnknown(t *testing.T) {
	_, _, err := openSource(context.Background(), config.DatasetConfig{Source: "ftp"})
	assert.Error(t, err)
}

func TestOpenSourceBadRedisURL(t *testing.T) {
	_, _, err := openSource(context.Background(), config.DatasetConfig{Source: config.SourceRedis, RedisURL: "not a url"})
	assert.Error(t, err)
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	printTree(&buf, []models.OperatorSummary{
		{Name: "DraftKings", GameTypes: []models.GameTypeSummary{
			{Name: "Classic", Slates: []models.SlateSummary{{Name: "Main", PlayerCount: 17}}},
		}},
	})
	assert.Equal(t, "DraftKings\n  Classic\n    Main (17 players)\n", buf.String())

	buf.Reset()
	printTree(&buf, nil)
	assert.Equal(t, "(no slates)\n", buf.String())
}
