package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/01moynul/marketpro-admin/internal/config"
	"github.com/go-sql-driver/mysql"
)

// Pool holds connection pool limits.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds the MySQL DSN from the configuration. An explicit DB_DSN wins
// over the individual parts; either way parseTime and clientFoundRows are
// forced on because the store relies on both.
func DSN(cfg *config.Config) (string, error) {
	var mc *mysql.Config
	if cfg.DBDSN != "" {
		parsed, err := mysql.ParseDSN(cfg.DBDSN)
		if err != nil {
			return "", fmt.Errorf("parse DB_DSN: %w", err)
		}
		mc = parsed
	} else {
		mc = mysql.NewConfig()
		mc.User = cfg.DBUser
		mc.Passwd = cfg.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		mc.DBName = cfg.DBName
	}

	// UPDATE ... WHERE id = ? must report matched rows, not changed rows,
	// otherwise a no-op update looks like a missing product.
	mc.ParseTime = true
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

// OpenDB initializes the primary connection pool from configuration.
func OpenDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	return OpenDBWithDSN(ctx, dsn, Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
}

// OpenDBWithDSN opens and configures a pool for any DSN and verifies it
// with a ping.
func OpenDBWithDSN(ctx context.Context, dsn string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
