package sqlconnect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/5w1tchy/library-api/internal/store/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	Driver string // postgres | sqlite
	DSN    string
}

// ConnectDB opens and pings the configured database and returns it with the
// SQL dialect matching the driver.
func ConnectDB(ctx context.Context, cfg Config) (*sql.DB, dbx.Dialect, error) {
	dialect, err := dbx.DialectFor(cfg.Driver)
	if err != nil {
		return nil, dbx.Dialect{}, err
	}
	if cfg.DSN == "" {
		return nil, dbx.Dialect{}, fmt.Errorf("DATABASE_URL not set")
	}

	driverName := "pgx"
	if dialect.Name == dbx.SQLite.Name {
		driverName = "sqlite"
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, dbx.Dialect{}, err
	}

	if dialect.Name == dbx.SQLite.Name {
		// One connection: SQLite serialises writers anyway, and PRAGMAs and
		// in-memory databases are per connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, dbx.Dialect{}, err
	}
	return db, dialect, nil
}
