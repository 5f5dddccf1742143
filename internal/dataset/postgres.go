package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"
)

// DefaultSlateTable holds one row per contest slate
const DefaultSlateTable = "dfs_slates"

// PostgresSource reads slates from a table with columns
// (id, operator, operator_game_type, operator_name, dfs_slate_players jsonb)
type PostgresSource struct {
	db    *sql.DB
	table string
}

// slateRow is one scanned slate row; nullable columns stay nullable
type slateRow struct {
	ID               string
	Operator         sql.NullString
	OperatorGameType sql.NullString
	OperatorName     sql.NullString
	Players          []byte
}

// NewPostgresSource opens a connection pool and verifies connectivity
func NewPostgresSource(dsn, table string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "open database")
	}

	// Startup-only reads need a small pool
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "ping database")
	}

	return NewPostgresSourceFromDB(db, table), nil
}

// NewPostgresSourceFromDB wraps an existing pool
func NewPostgresSourceFromDB(db *sql.DB, table string) *PostgresSource {
	if table == "" {
		table = DefaultSlateTable
	}
	return &PostgresSource{db: db, table: table}
}

// Name identifies the source in logs
func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

// Close releases the connection pool
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Load selects every slate row in insertion order and renders them as the
// same JSON array the file and Redis sources carry
func (s *PostgresSource) Load(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`
		SELECT id::text, operator, operator_game_type, operator_name, dfs_slate_players
		FROM %s
		ORDER BY id ASC
	`, pq.QuoteIdentifier(s.table))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "query slates")
	}
	defer rows.Close()

	var scanned []slateRow
	for rows.Next() {
		var r slateRow
		if err := rows.Scan(&r.ID, &r.Operator, &r.OperatorGameType, &r.OperatorName, &r.Players); err != nil {
			return nil, eris.Wrap(err, "scan slate")
		}
		scanned = append(scanned, r)
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate slates")
	}

	if len(scanned) == 0 {
		return nil, eris.Wrapf(ErrNotFound, "table %s is empty", s.table)
	}

	return encodeRows(scanned)
}

// encodeRows renders scanned rows in the dataset's JSON document shape
func encodeRows(rows []slateRow) ([]byte, error) {
	docs := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		doc := map[string]interface{}{
			"_id":              r.ID,
			"operator":         nullable(r.Operator),
			"operatorGameType": nullable(r.OperatorGameType),
			"operatorName":     nullable(r.OperatorName),
			"dfsSlatePlayers":  nil,
		}
		if len(r.Players) > 0 && json.Valid(r.Players) {
			doc["dfsSlatePlayers"] = json.RawMessage(r.Players)
		}
		docs = append(docs, doc)
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return nil, eris.Wrap(err, "encode slates")
	}
	return data, nil
}

func nullable(s sql.NullString) interface{} {
	if !s.Valid {
		return nil
	}
	return s.String
}
