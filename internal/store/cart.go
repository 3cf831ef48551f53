package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/marketpro-admin/internal/models"
)

// ListCartItems returns the raw cart rows, oldest first.
func (s *Store) ListCartItems(ctx context.Context) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := s.withConn(ctx, func(q Querier) error {
		rows, err := q.QueryContext(ctx, "SELECT id, product_id, quantity, created_at FROM cart ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var it models.CartItem
			if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.CreatedAt); err != nil {
				return err
			}
			items = append(items, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return items, nil
}

// AddCartItem inserts a cart row. The product id is not checked up front;
// the foreign key rejects unknown products with ErrProductReference.
func (s *Store) AddCartItem(ctx context.Context, productID int64, quantity int) (models.CartItem, error) {
	var it models.CartItem
	err := s.withConn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx, "INSERT INTO cart (product_id, quantity) VALUES (?, ?)", productID, quantity)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", classify(err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}

		err = q.QueryRowContext(ctx, "SELECT id, product_id, quantity, created_at FROM cart WHERE id = ?", id).
			Scan(&it.ID, &it.ProductID, &it.Quantity, &it.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("reload cart item %d: %w", id, err)
		}
		return nil
	})
	return it, err
}

// RemoveCartItem deletes a cart row by id. There is no ownership check.
func (s *Store) RemoveCartItem(ctx context.Context, id int64) error {
	return s.withConn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx, "DELETE FROM cart WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete cart item %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete cart item %d: %w", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
