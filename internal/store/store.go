package store

import (
	"errors"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/shopspring/decimal"
)

// Common errors returned by the store
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product already exists")
)

// CategoryGroup is one category of the catalog and its products in catalog order
type CategoryGroup struct {
	Category string
	Products []domain.Product
}

// CatalogStore defines the interface for catalog storage operations
type CatalogStore interface {
	// Add inserts a product at seed time
	Add(product domain.Product) error

	// FindByID looks a product up by ID ignoring case; a missing ID reports false
	FindByID(id string) (domain.Product, bool)

	// List returns all products in catalog order
	List() []domain.Product

	// GroupByCategory returns products grouped by category, categories sorted
	GroupByCategory() []CategoryGroup

	// DecrementStock takes qty units out of stock and returns the product after the change
	DecrementStock(id string, qty int) (domain.Product, error)

	// IncrementStock puts qty units back into stock
	IncrementStock(id string, qty int) (domain.Product, error)

	// SetPrice changes the unit price; existing carts and orders keep their snapshot
	SetPrice(id string, price decimal.Decimal) error

	// SetCategory moves a product to another category
	SetCategory(id string, category string) error
}
