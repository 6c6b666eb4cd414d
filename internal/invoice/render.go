// Package invoice renders catalog listings, carts and orders as fixed-width
// text tables. Rendering is pure: the same input always yields the same bytes.
package invoice

import (
	"fmt"
	"strings"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/store"
	"github.com/shopspring/decimal"
)

const (
	idWidth    = 12
	nameWidth  = 25
	priceWidth = 10
	qtyWidth   = 10

	banner    = "========================="
	rule      = "----------------------------------------------"
	shortRule = "-------------------------"
)

// RenderOrder formats an order as an invoice.
func RenderOrder(order *domain.Order) string {
	var b strings.Builder

	title(&b, "Invoice")
	fmt.Fprintf(&b, "Order ID:  %d\n", order.ID())
	fmt.Fprintf(&b, "Order Date: %s\n", order.Date().Format(domain.DateLayout))
	customer := order.Customer()
	fmt.Fprintf(&b, "Customer: %s <%s>\n", customer.Name, customer.Email)
	fmt.Fprintf(&b, "Ship To: %s\n", customer.Address)
	b.WriteString("Order Details:\n")
	lineTable(&b, order.Lines())
	fmt.Fprintf(&b, "Total Amount: %s\n", Money(order.TotalAmount()))
	b.WriteString(banner + "\n")

	return b.String()
}

// RenderCart formats the cart contents with its running total.
func RenderCart(cart *domain.Cart) string {
	var b strings.Builder

	title(&b, "Shopping Cart")
	lineTable(&b, cart.Lines())
	fmt.Fprintf(&b, "Total Price: %s\n", Money(cart.TotalPrice()))
	b.WriteString(banner + "\n")

	return b.String()
}

// RenderCatalog formats the catalog grouped by category with current stock.
func RenderCatalog(groups []store.CategoryGroup) string {
	var b strings.Builder

	title(&b, "Products")
	fmt.Fprintf(&b, "%s%s%s%s\n",
		cell("Product ID", idWidth), cell("Name", nameWidth), cell("Price", priceWidth), "Stock")
	b.WriteString(rule + "\n")

	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s\n%s\n", g.Category, shortRule)
		for _, p := range g.Products {
			fmt.Fprintf(&b, "%s%s%s%d\n",
				cell(p.ID, idWidth), cell(p.Name, nameWidth), cell(Money(p.UnitPrice), priceWidth), p.StockQuantity)
		}
		b.WriteString(shortRule + "\n")
	}

	return b.String()
}

// Money prints an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func title(b *strings.Builder, name string) {
	pad := (len(banner) - len(name)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(banner + "\n")
	b.WriteString(strings.Repeat(" ", pad) + name + "\n")
	b.WriteString(banner + "\n")
}

func lineTable(b *strings.Builder, lines []domain.CartLine) {
	fmt.Fprintf(b, "%s%s%s%s%s\n",
		cell("Product ID", idWidth), cell("Name", nameWidth), cell("Price", priceWidth), cell("Quantity", qtyWidth), "Total")
	b.WriteString(rule + "\n")

	for _, l := range lines {
		fmt.Fprintf(b, "%s%s%s%s%s\n",
			cell(l.Product.ID, idWidth),
			cell(l.Product.Name, nameWidth),
			cell(Money(l.Product.UnitPrice), priceWidth),
			cell(fmt.Sprint(l.Quantity), qtyWidth),
			Money(l.Subtotal()))
	}
	b.WriteString(rule + "\n")
}

// cell left-aligns s in a column of width, cutting it so at least one space
// separates it from the next column.
func cell(s string, width int) string {
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + strings.Repeat(" ", width-len(r))
}
