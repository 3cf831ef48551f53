package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/gosimple/slug"
)

const productColumns = `id, name, price, category, category_slug, image, description, stock, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (models.Product, error) {
	var p models.Product
	err := r.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Category,
		&p.CategorySlug,
		&p.Image,
		&p.Description,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// ListProducts returns all products matching the filter, oldest first.
func (s *Store) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var where []string
	var args []any

	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + likeEscaper.Replace(q) + "%"
		where = append(where, "(name LIKE ? OR description LIKE ?)")
		args = append(args, like, like)
	}
	if f.CategorySlug != "" {
		where = append(where, "category_slug = ?")
		args = append(args, slug.Make(f.CategorySlug))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	products := []models.Product{}
	err := s.withConn(ctx, func(q Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			products = append(products, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct returns ErrNotFound when no row has the id.
func (s *Store) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := s.withConn(ctx, func(q Querier) error {
		var err error
		p, err = getProduct(ctx, q, id)
		return err
	})
	return p, err
}

func getProduct(ctx context.Context, q Querier, id int64) (models.Product, error) {
	row := q.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// CreateProduct inserts a product and returns the stored row with its new id.
func (s *Store) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	var p models.Product
	err := s.withConn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx, `
			INSERT INTO products (name, price, category, category_slug, image, description, stock)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			in.Name, in.Price, in.Category, slug.Make(in.Category), in.Image, in.Description, in.Stock,
		)
		if err != nil {
			return fmt.Errorf("insert product: %w", classify(err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		p, err = getProduct(ctx, q, id)
		return err
	})
	return p, err
}

// UpdateProduct replaces every mutable field of the product.
func (s *Store) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (models.Product, error) {
	var p models.Product
	err := s.withConn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx, `
			UPDATE products
			SET name = ?, price = ?, category = ?, category_slug = ?, image = ?, description = ?, stock = ?
			WHERE id = ?`,
			in.Name, in.Price, in.Category, slug.Make(in.Category), in.Image, in.Description, in.Stock, id,
		)
		if err != nil {
			return fmt.Errorf("update product %d: %w", id, classify(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update product %d: %w", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		p, err = getProduct(ctx, q, id)
		return err
	})
	return p, err
}

// DeleteProduct removes the row. A missing id is ErrNotFound, a product
// still sitting in a cart is ErrProductInUse.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.withConn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete product %d: %w", id, classify(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ProductsByIDs loads the current state of the given products keyed by id.
// Ids with no row are simply absent from the map.
func (s *Store) ProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	err := s.withConn(ctx, func(q Querier) error {
		rows, err := q.QueryContext(ctx,
			"SELECT "+productColumns+" FROM products WHERE id IN ("+placeholders+")", args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			out[p.ID] = p
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return out, nil
}
