package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Carts and orders hold value copies of it.
type Product struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	StockQuantity int             `json:"stock_quantity" yaml:"stock"`
	Category      string          `json:"category" yaml:"category"`
}

// Validate reports whether the product can be placed in a catalog.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product %s has empty name", ErrInvalidProduct, p.ID)
	}
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: product %s has negative price", ErrInvalidProduct, p.ID)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: product %s has negative stock", ErrInvalidProduct, p.ID)
	}
	return nil
}

// SameID compares product IDs the way the catalog does, ignoring case and
// surrounding spaces.
func SameID(a, b string) bool {
	return NormalizeID(a) == NormalizeID(b)
}

// NormalizeID returns the canonical form of a product ID used as a lookup key.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
