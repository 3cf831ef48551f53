package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "name", "price", "category", "category_slug", "image", "description", "stock", "created_at", "updated_at"}

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func productRow(rows *sqlmock.Rows, id int64, name, price string) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, name, price, "Home Decor", "home-decor", "/img/"+name+".png", name+" description", 3, now, now)
}

func TestListProductsEmptyIsNotNil(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(productCols))

	products, err := s.ListProducts(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	require.NotNil(t, products)
	require.Empty(t, products)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsFilters(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (name LIKE ? OR description LIKE ?) AND category_slug = ? ORDER BY id")).
		WithArgs(`%50\%%`, `%50\%%`, "home-decor").
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 1, "lamp", "19.99"))

	products, err := s.ListProducts(context.Background(), models.ProductFilter{Query: " 50% ", CategorySlug: "Home Decor"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "lamp", products[0].Name)
	require.True(t, products[0].Price.Equal(decimal.RequireFromString("19.99")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := s.GetProduct(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductReloadsRow(t *testing.T) {
	s, mock := newMock(t)
	price := decimal.RequireFromString("19.99")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("lamp", price, "Home Decor", "home-decor", "/img/lamp.png", "a lamp", 3).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 7, "lamp", "19.99"))

	p, err := s.CreateProduct(context.Background(), models.ProductInput{
		Name:        "lamp",
		Price:       &price,
		Category:    "Home Decor",
		Image:       "/img/lamp.png",
		Description: "a lamp",
		Stock:       3,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), p.ID)
	require.Equal(t, "home-decor", p.CategorySlug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductMissingID(t *testing.T) {
	s, mock := newMock(t)
	price := decimal.RequireFromString("5")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.UpdateProduct(context.Background(), 99, models.ProductInput{Name: "x", Price: &price, Category: "c", Image: "i", Description: "d"})
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProduct(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = ?")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, s.DeleteProduct(context.Background(), 3), ErrNotFound)
	})

	t.Run("in cart", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = ?")).
			WithArgs(int64(3)).
			WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

		require.ErrorIs(t, s.DeleteProduct(context.Background(), 3), ErrProductInUse)
	})

	t.Run("ok", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = ?")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.DeleteProduct(context.Background(), 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductsByIDs(t *testing.T) {
	s, mock := newMock(t)

	got, err := s.ProductsByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)

	rows := sqlmock.NewRows(productCols)
	productRow(rows, 1, "lamp", "10.00")
	productRow(rows, 3, "rug", "45.50")
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id IN (?,?,?)")).
		WithArgs(int64(1), int64(2), int64(3)).
		WillReturnRows(rows)

	got, err = s.ProductsByIDs(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "rug", got[3].Name)
	_, ok := got[2]
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCartItem(t *testing.T) {
	s, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cart (product_id, quantity) VALUES (?, ?)")).
		WithArgs(int64(5), 2).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart WHERE id = ?")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "quantity", "created_at"}).AddRow(11, 5, 2, now))

	it, err := s.AddCartItem(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Equal(t, models.CartItem{ID: 11, ProductID: 5, Quantity: 2, CreatedAt: now}, it)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cart")).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	_, err := s.AddCartItem(context.Background(), 999, 1)
	require.ErrorIs(t, err, ErrProductReference)

	var me *mysql.MySQLError
	require.True(t, errors.As(err, &me))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCartItemsAndRemove(t *testing.T) {
	s, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM cart ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "quantity", "created_at"}).
			AddRow(1, 5, 1, now).
			AddRow(2, 6, 4, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart WHERE id = ?")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart WHERE id = ?")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	items, err := s.ListCartItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 4, items[1].Quantity)

	require.NoError(t, s.RemoveCartItem(context.Background(), 2))
	require.ErrorIs(t, s.RemoveCartItem(context.Background(), 2), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSentEmails(t *testing.T) {
	s, mock := newMock(t)
	sentAt := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sent_emails")).
		WithArgs("no-reply@marketpro.local", "ops@example.com", "hi", "body", sentAt).
		WillReturnResult(sqlmock.NewResult(4, 1))

	rec, err := s.RecordSentEmail(context.Background(), models.SentEmail{
		Sender:    "no-reply@marketpro.local",
		Recipient: "ops@example.com",
		Subject:   "hi",
		Body:      "body",
		SentAt:    sentAt,
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), rec.ID)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sent_at DESC, id DESC LIMIT ?")).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender", "recipient", "subject", "body", "sent_at"}).
			AddRow(4, "no-reply@marketpro.local", "ops@example.com", "hi", "body", sentAt))

	list, err := s.ListSentEmails(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, rec, list[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers(t *testing.T) {
	s, mock := newMock(t)
	userCols := []string{"id", "username", "email", "password_hash", "created_at"}
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("ada", "ada@example.com", "hash", sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := s.CreateUser(context.Background(), &models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, ErrDuplicate)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = ? OR email = ?")).
		WithArgs("ada@example.com", "ada@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "ada", "ada@example.com", "hash", now))

	u, err := s.FindUserByLogin(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "ada", u.Username)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.GetUser(context.Background(), 2)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
