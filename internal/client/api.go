package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/01moynul/marketpro-admin/internal/models"
)

type LoginResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"usernameOrEmail": usernameOrEmail,
		"password":        password,
	}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, username, password, email string) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"password": password,
		"email":    email,
	}, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

func (c *Client) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.CategorySlug != "" {
		q.Set("category", f.CategorySlug)
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.Product
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodPost, "/products", in, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, &out)
	return out, err
}

// DeleteProduct returns the server's confirmation message.
func (c *Client) DeleteProduct(ctx context.Context, id int64) (string, error) {
	var out messageResponse
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, &out)
	return out.Message, err
}

func (c *Client) ListCart(ctx context.Context) ([]models.CartLine, error) {
	var out []models.CartLine
	err := c.do(ctx, http.MethodGet, "/cart", nil, &out)
	return out, err
}

func (c *Client) CartSummary(ctx context.Context) (models.CartSummary, error) {
	var out models.CartSummary
	err := c.do(ctx, http.MethodGet, "/cart/summary", nil, &out)
	return out, err
}

// AddToCart adds productID. A zero quantity is left out so the server
// applies its default of 1.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (models.CartItem, error) {
	body := map[string]any{"product_id": productID}
	if quantity != 0 {
		body["quantity"] = quantity
	}
	var out models.CartItem
	err := c.do(ctx, http.MethodPost, "/cart", body, &out)
	return out, err
}

func (c *Client) RemoveFromCart(ctx context.Context, id int64) (string, error) {
	var out messageResponse
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", id), nil, &out)
	return out.Message, err
}

func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	return c.do(ctx, http.MethodPost, "/email/send", map[string]string{
		"to":      to,
		"subject": subject,
		"body":    body,
	}, nil)
}

func (c *Client) SendEmailToSelf(ctx context.Context, subject, body string) error {
	return c.do(ctx, http.MethodPost, "/email/send-to-self", map[string]string{
		"subject": subject,
		"body":    body,
	}, nil)
}

func (c *Client) SentEmails(ctx context.Context, limit int) ([]models.SentEmail, error) {
	path := "/email/sent"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var out []models.SentEmail
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// UploadImage posts an image as multipart form data and returns the public
// URL the server stored it under.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var out struct {
		URL string `json:"url"`
	}
	err = c.send(ctx, http.MethodPost, "/uploads/images", &buf, mw.FormDataContentType(), &out)
	return out.URL, err
}
