// Package dataset loads the static DFS slate dataset the dashboard is built from.
//
// The dataset is read once at startup from one Source. Malformed content never
// fails the load: anything that cannot be decoded is dropped, and a document
// that is not a JSON array yields an empty dataset.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

// ErrNotFound is returned by a Source when the dataset does not exist
var ErrNotFound = eris.New("dataset not found")

// Source provides the raw JSON array of slate records
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	Name() string
}

// slateDoc mirrors models.RawSlate with loosely typed parts so one bad
// field or player does not discard the whole record
type slateDoc struct {
	ID               json.RawMessage   `json:"_id"`
	Operator         *string           `json:"operator"`
	OperatorGameType *string           `json:"operatorGameType"`
	OperatorName     *string           `json:"operatorName"`
	DfsSlatePlayers  []json.RawMessage `json:"dfsSlatePlayers"`
}

// playerDoc keeps every player field raw; each is converted on its own so a
// wrongly typed field only blanks that field
type playerDoc struct {
	SlatePlayerID      json.RawMessage `json:"slatePlayerId"`
	OperatorPlayerName json.RawMessage `json:"operatorPlayerName"`
	OperatorPosition   json.RawMessage `json:"operatorPosition"`
	OperatorSalary     json.RawMessage `json:"operatorSalary"`
	Team               json.RawMessage `json:"team"`
	FantasyPoints      json.RawMessage `json:"fantasyPoints"`
}

// Load reads the dataset from src and decodes it. A missing dataset is logged
// and treated as empty; any other source failure is returned.
func Load(ctx context.Context, src Source) ([]*models.RawSlate, error) {
	data, err := src.Load(ctx)
	if err != nil {
		if eris.Is(err, ErrNotFound) {
			zap.L().Warn("no slate data loaded", zap.String("source", src.Name()), zap.Error(err))
			return []*models.RawSlate{}, nil
		}
		return nil, eris.Wrapf(err, "dataset: load from %s", src.Name())
	}

	slates := Decode(data)
	zap.L().Info("slate data loaded",
		zap.String("source", src.Name()),
		zap.Int("slates", len(slates)),
		zap.Int("bytes", len(data)),
	)
	return slates, nil
}

// Decode parses a JSON array of slate records, skipping anything malformed
func Decode(data []byte) []*models.RawSlate {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		zap.L().Warn("slate data is not a JSON array", zap.Error(err))
		return []*models.RawSlate{}
	}

	slates := make([]*models.RawSlate, 0, len(elems))
	skipped := 0
	for i, elem := range elems {
		if isNull(elem) {
			skipped++
			continue
		}

		var doc slateDoc
		if err := json.Unmarshal(elem, &doc); err != nil {
			zap.L().Debug("skipping malformed slate", zap.Int("position", i), zap.Error(err))
			skipped++
			continue
		}

		slates = append(slates, doc.toModel())
	}

	if skipped > 0 {
		zap.L().Warn("skipped malformed slate records", zap.Int("count", skipped))
	}
	return slates
}

func (d *slateDoc) toModel() *models.RawSlate {
	s := &models.RawSlate{
		ID:               rawID(d.ID),
		Operator:         deref(d.Operator),
		OperatorGameType: deref(d.OperatorGameType),
		OperatorName:     deref(d.OperatorName),
		DfsSlatePlayers:  make([]*models.RawPlayer, 0, len(d.DfsSlatePlayers)),
	}

	for _, elem := range d.DfsSlatePlayers {
		if isNull(elem) {
			continue
		}
		var doc playerDoc
		if err := json.Unmarshal(elem, &doc); err != nil {
			continue
		}
		s.DfsSlatePlayers = append(s.DfsSlatePlayers, doc.toModel())
	}

	return s
}

func (d *playerDoc) toModel() *models.RawPlayer {
	return &models.RawPlayer{
		SlatePlayerID:      looseNumber(d.SlatePlayerID),
		OperatorPlayerName: looseString(d.OperatorPlayerName),
		OperatorPosition:   looseString(d.OperatorPosition),
		OperatorSalary:     looseNumber(d.OperatorSalary),
		Team:               looseString(d.Team),
		FantasyPoints:      looseNumber(d.FantasyPoints),
	}
}

// looseNumber reads a JSON number or a numeric string ("12"). Anything else
// is 0, which downstream treats as absent.
func looseNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 || isNull(raw) {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return 0
}

// looseString reads a JSON string, or the literal text of a number. Other
// values are "".
func looseString(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawID accepts a plain string id or any other JSON value (e.g. {"$oid": ...})
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
