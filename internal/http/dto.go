package http

import (
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/invoice"
	"github.com/fjod/go_shop/internal/store"
)

type ProductResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	UnitPrice     string `json:"unit_price"`
	StockQuantity int    `json:"stock_quantity"`
	Category      string `json:"category"`
}

type CategoryResponse struct {
	Category string            `json:"category"`
	Products []ProductResponse `json:"products"`
}

type CatalogResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CartLineDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type CartResponse struct {
	ID         int64         `json:"id"`
	Lines      []CartLineDTO `json:"lines"`
	TotalPrice string        `json:"total_price"`
}

type CustomerDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type OrderResponseDTO struct {
	ID          int64         `json:"id"`
	Customer    CustomerDTO   `json:"customer"`
	Date        string        `json:"date"`
	Lines       []CartLineDTO `json:"lines"`
	TotalAmount string        `json:"total_amount"`
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"` // nil means 1
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		UnitPrice:     invoice.Money(p.UnitPrice),
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
	}
}

func toCatalogResponse(groups []store.CategoryGroup) CatalogResponse {
	resp := CatalogResponse{Categories: make([]CategoryResponse, 0, len(groups))}
	for _, g := range groups {
		products := make([]ProductResponse, 0, len(g.Products))
		for _, p := range g.Products {
			products = append(products, toProductResponse(p))
		}
		resp.Categories = append(resp.Categories, CategoryResponse{Category: g.Category, Products: products})
	}
	return resp
}

func toLineDTOs(lines []domain.CartLine) []CartLineDTO {
	dtos := make([]CartLineDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, CartLineDTO{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			UnitPrice:   invoice.Money(l.Product.UnitPrice),
			Quantity:    l.Quantity,
			Subtotal:    invoice.Money(l.Subtotal()),
		})
	}
	return dtos
}

func toCartResponse(c *domain.Cart) CartResponse {
	return CartResponse{
		ID:         c.ID(),
		Lines:      toLineDTOs(c.Lines()),
		TotalPrice: invoice.Money(c.TotalPrice()),
	}
}

func toOrderResponse(o *domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:          o.ID(),
		Customer:    toCustomerDTO(o.Customer()),
		Date:        o.Date().Format(domain.DateLayout),
		Lines:       toLineDTOs(o.Lines()),
		TotalAmount: invoice.Money(o.TotalAmount()),
	}
}
