package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/shopspring/decimal"
)

var ErrSubmitInFlight = errors.New("a submit is already in progress")

// ProductFields is the editable state of the product form, as typed.
type ProductFields struct {
	Name        string
	Price       string
	Category    string
	Image       string
	Description string
	Stock       string
}

// FieldsFromProduct fills the form for editing p.
func FieldsFromProduct(p models.Product) ProductFields {
	return ProductFields{
		Name:        p.Name,
		Price:       p.Price.String(),
		Category:    p.Category,
		Image:       p.Image,
		Description: p.Description,
		Stock:       strconv.Itoa(p.Stock),
	}
}

// ProductForm creates a product (ID 0) or edits one. Only one submit may be
// in flight at a time; a failed submit keeps the fields and records the
// server's message in Err.
type ProductForm struct {
	ID int64

	mu     sync.Mutex
	fields ProductFields
	err    string

	inFlight atomic.Bool
}

func NewProductForm(id int64, fields ProductFields) *ProductForm {
	return &ProductForm{ID: id, fields: fields}
}

func (f *ProductForm) Fields() ProductFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *ProductForm) SetFields(fields ProductFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Err is the message of the last failed submit, or "".
func (f *ProductForm) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Submitting reports whether the submit control should be disabled.
func (f *ProductForm) Submitting() bool {
	return f.inFlight.Load()
}

// Validate checks the fields and builds the request body.
func (f *ProductForm) Validate() (models.ProductInput, error) {
	fields := f.Fields()

	var missing []string
	for _, kv := range []struct{ name, v string }{
		{"name", fields.Name},
		{"price", fields.Price},
		{"category", fields.Category},
		{"image", fields.Image},
		{"description", fields.Description},
	} {
		if strings.TrimSpace(kv.v) == "" {
			missing = append(missing, kv.name)
		}
	}
	if len(missing) > 0 {
		return models.ProductInput{}, fmt.Errorf("required: %s", strings.Join(missing, ", "))
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields.Price))
	if err != nil {
		return models.ProductInput{}, fmt.Errorf("price %q is not a number", fields.Price)
	}
	if price.IsNegative() {
		return models.ProductInput{}, errors.New("price must not be negative")
	}

	stock := 0
	if s := strings.TrimSpace(fields.Stock); s != "" {
		stock, err = strconv.Atoi(s)
		if err != nil || stock < 0 {
			return models.ProductInput{}, fmt.Errorf("stock %q must be a whole number of zero or more", fields.Stock)
		}
	}

	return models.ProductInput{
		Name:        strings.TrimSpace(fields.Name),
		Price:       &price,
		Category:    strings.TrimSpace(fields.Category),
		Image:       strings.TrimSpace(fields.Image),
		Description: strings.TrimSpace(fields.Description),
		Stock:       stock,
	}, nil
}

// Submit validates and sends the form. A second call while one is running
// returns ErrSubmitInFlight without sending anything.
func (f *ProductForm) Submit(ctx context.Context, c *Client) (models.Product, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return models.Product{}, ErrSubmitInFlight
	}
	defer f.inFlight.Store(false)

	in, err := f.Validate()
	if err != nil {
		f.setErr(err)
		return models.Product{}, err
	}

	var p models.Product
	if f.ID == 0 {
		p, err = c.CreateProduct(ctx, in)
	} else {
		p, err = c.UpdateProduct(ctx, f.ID, in)
	}
	if err != nil {
		f.setErr(err)
		return models.Product{}, err
	}

	f.mu.Lock()
	f.ID = p.ID
	f.err = ""
	f.mu.Unlock()
	return p, nil
}

func (f *ProductForm) setErr(err error) {
	msg := err.Error()
	var ae *APIError
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	f.mu.Lock()
	f.err = msg
	f.mu.Unlock()
}
