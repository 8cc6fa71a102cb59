// Package sqlite adaptadores de persistencia sobre SQLite (mattn/go-sqlite3),
// pensados para ejecuciones locales y la CLI.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	sku           TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	ean           TEXT,
	producer_name TEXT,
	category      TEXT,
	is_wire       INTEGER NOT NULL DEFAULT 0,
	default_image TEXT,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS inventory (
	sku           TEXT PRIMARY KEY,
	unit          TEXT,
	quantity      TEXT,
	shipping_time TEXT,
	shipping_cost TEXT,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS prices (
	sku                     TEXT PRIMARY KEY,
	net_price               TEXT,
	logistic_unit_net_price TEXT,
	created_at              DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open abre (o crea) la base en path y crea las tablas si no existen.
// ":memory:" sirve para tests. Los decimales se guardan como TEXT para no perder precisión.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de %s: %w", path, err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir sqlite: %w", domain.ErrPersistence, err)
	}
	// Un solo escritor; además ":memory:" es por conexión.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: crear esquema: %w", domain.ErrPersistence, err)
	}
	return db, nil
}

// insertAll ejecuta stmt por cada fila dentro de una transacción y cuenta las insertadas.
func insertAll(ctx context.Context, db *sql.DB, stmt string, rows [][]any) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	ps, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return 0, err
	}
	defer ps.Close()

	total := 0
	for _, args := range rows {
		res, err := ps.ExecContext(ctx, args...)
		if err != nil {
			return 0, err
		}
		n, _ := res.RowsAffected()
		total += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

func wrapErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// nullDecimal nil -> NULL; si no, el texto del decimal.
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
