// Package store is the data-access handle for the API. A Store is built once
// from the pool in main and passed to whoever needs it; every operation
// borrows a connection for its own duration and always hands it back.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrProductReference means a cart row pointed at a product id that does not exist.
	ErrProductReference = errors.New("referenced product does not exist")
	// ErrProductInUse means a product delete was blocked by a cart row.
	ErrProductInUse = errors.New("product is referenced by a cart item")
	ErrDuplicate    = errors.New("duplicate record")
)

// MySQL server error numbers we translate.
const (
	errDupEntry         = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errRowIsReferenced2 = 1217
	errNoReferencedRow2 = 1216
)

// Querier is what repository code runs statements against. *sql.DB, *sql.Conn
// and *sql.Tx all satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping checks the pool can still reach the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withConn borrows one pooled connection for fn and releases it on every
// return path, including panics.
func (s *Store) withConn(ctx context.Context, fn func(q Querier) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// classify maps driver errors onto the package's sentinel errors, keeping
// the original error in the chain for logging.
func classify(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case errNoReferencedRow, errNoReferencedRow2:
		return fmt.Errorf("%w: %w", ErrProductReference, err)
	case errRowIsReferenced, errRowIsReferenced2:
		return fmt.Errorf("%w: %w", ErrProductInUse, err)
	case errDupEntry:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}
