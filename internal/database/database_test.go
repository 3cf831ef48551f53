package database

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/01moynul/marketpro-admin/internal/config"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestDSNFromParts(t *testing.T) {
	dsn, err := DSN(&config.Config{
		DBUser:     "root",
		DBPassword: "secret",
		DBHost:     "db.internal",
		DBPort:     "3307",
		DBName:     "product_details",
	})
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "root", parsed.User)
	require.Equal(t, "secret", parsed.Passwd)
	require.Equal(t, "db.internal:3307", parsed.Addr)
	require.Equal(t, "product_details", parsed.DBName)
	require.True(t, parsed.ParseTime)
	require.True(t, parsed.ClientFoundRows)
}

func TestDSNOverrideKeepsRequiredFlags(t *testing.T) {
	dsn, err := DSN(&config.Config{DBDSN: "app:pw@tcp(127.0.0.1:3306)/shop"})
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "shop", parsed.DBName)
	require.True(t, parsed.ParseTime)
	require.True(t, parsed.ClientFoundRows)
}

func TestDSNRejectsGarbage(t *testing.T) {
	_, err := DSN(&config.Config{DBDSN: "not a dsn"})
	require.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.Len(t, entries, 8)
}

func TestMigrateReturnsBorrowedConn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	versionRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"version", "dirty"}).AddRow(4, false)
	}

	// Driver setup: database name, then the version table check under the lock.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATABASE()")).
		WillReturnRows(sqlmock.NewRows([]string{"DATABASE()"}).AddRow("product_details"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GET_LOCK(?, 10)")).
		WillReturnRows(sqlmock.NewRows([]string{"lock"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SHOW TABLES LIKE 'schema_migrations'")).
		WillReturnRows(sqlmock.NewRows([]string{"table"}).AddRow("schema_migrations"))
	mock.ExpectExec(regexp.QuoteMeta("SELECT RELEASE_LOCK(?)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Up at the latest version has nothing to apply.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GET_LOCK(?, 10)")).
		WillReturnRows(sqlmock.NewRows([]string{"lock"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, dirty FROM `schema_migrations` LIMIT 1")).
		WillReturnRows(versionRow())
	mock.ExpectExec(regexp.QuoteMeta("SELECT RELEASE_LOCK(?)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, dirty FROM `schema_migrations` LIMIT 1")).
		WillReturnRows(versionRow())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, Migrate(context.Background(), db, logger))

	require.Equal(t, 0, db.Stats().InUse)
	require.NoError(t, mock.ExpectationsWereMet())
}
