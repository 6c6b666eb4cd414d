// Package seed provides the initial catalog and customers of a shop session.
package seed

import (
	"math/rand"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultStockMax is the upper bound of randomly seeded stock.
const DefaultStockMax = 50

type catalogEntry struct {
	id       string
	name     string
	price    int64
	category string
}

var defaultCatalog = []catalogEntry{
	{"P001", "iPhone 14 Pro Max", 89990, "Electronics"},
	{"P002", "Samsung Galaxy S23 Ultra", 74990, "Electronics"},
	{"P003", "Apple MacBook Pro M2", 99990, "Electronics"},
	{"P004", "Dell XPS 13", 69990, "Electronics"},
	{"P005", "PlayStation 5", 32990, "Electronics"},
	{"P006", "Xbox Series X", 31990, "Electronics"},
	{"P007", "Sony WH-1000XM5", 18990, "Electronics"},
	{"P008", "AirPods Max", 24990, "Electronics"},
	{"P009", "LG Refrigerator", 39990, "Home Appliances"},
	{"P010", "Samsung Refrigerator", 34990, "Home Appliances"},
	{"P011", "LG Washing Machine", 24990, "Home Appliances"},
	{"P012", "Carrier Air Conditioner", 16990, "Home Appliances"},
	{"P013", "Shirts", 2500, "Fashion"},
	{"P014", "Dresses", 5000, "Fashion"},
	{"P015", "Pants", 4000, "Fashion"},
	{"P016", "Tops", 2000, "Fashion"},
	{"P017", "Bottoms", 3000, "Fashion"},
	{"P018", "Shoes", 6000, "Fashion"},
	{"P019", "Bags", 10000, "Fashion"},
	{"P020", "Watches", 20000, "Fashion"},
	{"P021", "Jewelry", 5000, "Fashion"},
	{"P022", "Foundation", 2000, "Beauty and Personal Care"},
	{"P023", "Eyeshadow", 1500, "Beauty and Personal Care"},
	{"P024", "Lipstick", 1000, "Beauty and Personal Care"},
	{"P025", "Moisturizer", 2000, "Beauty and Personal Care"},
	{"P026", "Cleanser", 1000, "Beauty and Personal Care"},
	{"P027", "Sunscreen", 1500, "Beauty and Personal Care"},
	{"P028", "Shampoo", 800, "Beauty and Personal Care"},
	{"P029", "Conditioner", 800, "Beauty and Personal Care"},
	{"P030", "Hair Styling Products", 1500, "Beauty and Personal Care"},
}

// StockFunc yields the initial stock for a product.
type StockFunc func() int

// RandomStock returns stock in [1, max] drawn from rng.
func RandomStock(rng *rand.Rand, max int) StockFunc {
	if max < 1 {
		max = DefaultStockMax
	}
	return func() int {
		return rng.Intn(max) + 1
	}
}

// FixedStock gives every product the same stock, handy in tests.
func FixedStock(n int) StockFunc {
	return func() int { return n }
}

// DefaultProducts returns the built-in catalog with stock from stock.
func DefaultProducts(stock StockFunc) []domain.Product {
	products := make([]domain.Product, 0, len(defaultCatalog))
	for _, e := range defaultCatalog {
		products = append(products, domain.Product{
			ID:            e.id,
			Name:          e.name,
			UnitPrice:     decimal.NewFromInt(e.price),
			StockQuantity: stock(),
			Category:      e.category,
		})
	}
	return products
}

// DefaultCustomers returns the built-in customers; the first one drives the console session.
func DefaultCustomers() []domain.Customer {
	return []domain.Customer{
		{ID: 1, Name: "Alice Smith", Email: "alice.smith@example.com", Address: "123 Main St"},
		{ID: 2, Name: "Bob Johnson", Email: "bob.johnson@example.com", Address: "456 Oak Ave"},
	}
}
