package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/marketpro-admin/internal/models"
)

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(r rowScanner) (models.User, error) {
	var u models.User
	err := r.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// CreateUser inserts the user and fills in ID and CreatedAt. A taken
// username or email is ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return s.withConn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx,
			"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
			u.Username, u.Email, u.PasswordHash, u.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert user: %w", classify(err))
		}
		u.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
}

// FindUserByLogin looks a user up by username or email.
func (s *Store) FindUserByLogin(ctx context.Context, usernameOrEmail string) (models.User, error) {
	var u models.User
	err := s.withConn(ctx, func(q Querier) error {
		var err error
		u, err = scanUser(q.QueryRowContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE username = ? OR email = ? LIMIT 1",
			usernameOrEmail, usernameOrEmail))
		return err
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, err
}

func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.withConn(ctx, func(q Querier) error {
		var err error
		u, err = scanUser(q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
		return err
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, err
}
