package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
)

// DB archives finished conversions in a local sqlite file.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS conversions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  filename TEXT NOT NULL,
  format TEXT NOT NULL,
  documentHash TEXT NOT NULL,
  totalRows INTEGER NOT NULL,
  totalSeats INTEGER NOT NULL,
  resultJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_conversions_hash ON conversions(documentHash);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) SaveConversion(ctx context.Context, record dto.ConversionRecord) (int64, error) {
	res, err := d.conn.ExecContext(ctx, `
INSERT INTO conversions (filename, format, documentHash, totalRows, totalSeats, resultJson)
VALUES (?, ?, ?, ?, ?, ?)
`, record.Filename, record.Format, record.DocumentHash, record.TotalRows, record.TotalSeats, record.ResultJSON)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// ListConversions returns the most recent conversions first.
func (d *DB) ListConversions(ctx context.Context, limit int) ([]dto.ConversionRecord, error) {
	rows, err := d.conn.QueryContext(ctx, `
SELECT id, filename, format, documentHash, totalRows, totalSeats, resultJson, createdAt
FROM conversions ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.ConversionRecord
	for rows.Next() {
		var row dto.ConversionRecord
		if err := rows.Scan(&row.ID, &row.Filename, &row.Format, &row.DocumentHash,
			&row.TotalRows, &row.TotalSeats, &row.ResultJSON, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
