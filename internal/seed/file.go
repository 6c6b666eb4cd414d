package seed

import (
	"fmt"
	"os"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a catalog seed file.
//
//	products:
//	  - id: P001
//	    name: Widget
//	    price: "10.00"
//	    stock: 5        # omitted -> random
//	    category: Tools
//	customers:
//	  - id: 1
//	    name: Alice Smith
//	    email: alice.smith@example.com
//	    address: 123 Main St
type File struct {
	Products  []FileProduct     `yaml:"products"`
	Customers []domain.Customer `yaml:"customers"`
}

type FileProduct struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Stock    *int   `yaml:"stock"`
	Category string `yaml:"category"`
}

// Data is a resolved seed: products ready for the catalog plus customers.
type Data struct {
	Products  []domain.Product
	Customers []domain.Customer
}

// LoadFile reads and resolves a YAML seed file.
func LoadFile(path string, stock StockFunc) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(raw, stock)
}

// Parse resolves YAML seed data. Products without stock draw it from stock;
// a file without customers gets DefaultCustomers.
func Parse(raw []byte, stock StockFunc) (*Data, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if len(f.Products) == 0 {
		return nil, fmt.Errorf("catalog file has no products")
	}

	data := &Data{
		Products:  make([]domain.Product, 0, len(f.Products)),
		Customers: f.Customers,
	}
	for i, fp := range f.Products {
		price, err := decimal.NewFromString(fp.Price)
		if err != nil {
			return nil, fmt.Errorf("product #%d (%s): invalid price %q: %w", i+1, fp.ID, fp.Price, err)
		}

		var qty int
		if fp.Stock != nil {
			qty = *fp.Stock
		} else {
			qty = stock()
		}

		p := domain.Product{
			ID:            fp.ID,
			Name:          fp.Name,
			UnitPrice:     price,
			StockQuantity: qty,
			Category:      fp.Category,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product #%d: %w", i+1, err)
		}
		data.Products = append(data.Products, p)
	}

	if len(data.Customers) == 0 {
		data.Customers = DefaultCustomers()
	}
	return data, nil
}

// Default resolves the built-in seed.
func Default(stock StockFunc) *Data {
	return &Data{
		Products:  DefaultProducts(stock),
		Customers: DefaultCustomers(),
	}
}
