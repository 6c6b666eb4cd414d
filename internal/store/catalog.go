package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/shopspring/decimal"
)

// Catalog implements CatalogStore with in-memory storage
type Catalog struct {
	mu       sync.RWMutex
	products map[string]*domain.Product // normalized ID -> product
	order    []string                   // normalized IDs in insertion order
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[string]*domain.Product),
	}
}

// NewCatalogFrom creates a catalog holding products in the given order
func NewCatalogFrom(products []domain.Product) (*Catalog, error) {
	c := NewCatalog()
	for _, p := range products {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) Add(product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := domain.NormalizeID(product.ID)
	if _, exists := c.products[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProduct, product.ID)
	}

	p := product
	c.products[key] = &p
	c.order = append(c.order, key)
	return nil
}

func (c *Catalog) FindByID(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, exists := c.products[domain.NormalizeID(id)]
	if !exists {
		return domain.Product{}, false
	}
	return *p, true
}

func (c *Catalog) List() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.Product, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, *c.products[key])
	}
	return result
}

func (c *Catalog) GroupByCategory() []CategoryGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byCategory := make(map[string][]domain.Product)
	for _, key := range c.order {
		p := c.products[key]
		byCategory[p.Category] = append(byCategory[p.Category], *p)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	groups := make([]CategoryGroup, 0, len(categories))
	for _, category := range categories {
		groups = append(groups, CategoryGroup{Category: category, Products: byCategory[category]})
	}
	return groups
}

func (c *Catalog) DecrementStock(id string, qty int) (domain.Product, error) {
	if qty <= 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, exists := c.products[domain.NormalizeID(id)]
	if !exists {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if p.StockQuantity < qty {
		return domain.Product{}, fmt.Errorf("%w: %s has %d, requested %d", domain.ErrOutOfStock, p.ID, p.StockQuantity, qty)
	}

	p.StockQuantity -= qty
	return *p, nil
}

func (c *Catalog) IncrementStock(id string, qty int) (domain.Product, error) {
	if qty <= 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, exists := c.products[domain.NormalizeID(id)]
	if !exists {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	p.StockQuantity += qty
	return *p, nil
}

func (c *Catalog) SetPrice(id string, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: negative price for %s", domain.ErrInvalidProduct, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, exists := c.products[domain.NormalizeID(id)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p.UnitPrice = price
	return nil
}

func (c *Catalog) SetCategory(id string, category string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, exists := c.products[domain.NormalizeID(id)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p.Category = category
	return nil
}
