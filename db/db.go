package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"nk-catalog/config"
)

// DB holds the database connection
var DB *sql.DB

// Driver is the database/sql driver name DB was opened with
var Driver string

const schema = `
CREATE TABLE IF NOT EXISTS nk_feed_submissions (
	id            TEXT PRIMARY KEY,
	product_index INTEGER NOT NULL,
	product_name  TEXT NOT NULL,
	tnved         TEXT NOT NULL DEFAULT '',
	category_id   INTEGER NOT NULL DEFAULT 0,
	feed_id       TEXT NOT NULL DEFAULT '',
	success       BOOLEAN NOT NULL,
	error         TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT '',
	submitted_at  TEXT NOT NULL
)`

// InitDB opens the configured database, checks it and applies the schema
func InitDB(ctx context.Context, cfg config.DBConfig) error {
	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	DB = conn
	Driver = cfg.Driver
	log.Printf("✓ Database connection established successfully (driver=%s)", cfg.Driver)
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		err := DB.Close()
		DB = nil
		return err
	}
	return nil
}

// Rebind rewrites '?' placeholders into the style of the active driver
func Rebind(query string) string {
	if Driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
