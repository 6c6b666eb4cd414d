package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one selected product and how many units of it.
// Product is a snapshot taken when the line was first added.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal returns unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds a customer's selected lines in insertion order.
// totalPrice is kept equal to the sum of line subtotals on every mutation.
type Cart struct {
	id         int64
	lines      []CartLine
	totalPrice decimal.Decimal
}

func NewCart(id int64) *Cart {
	return &Cart{id: id, totalPrice: decimal.Zero}
}

func (c *Cart) ID() int64 { return c.id }

func (c *Cart) TotalPrice() decimal.Decimal { return c.totalPrice }

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID, if any.
func (c *Cart) Line(productID string) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

// AddProduct merges qty units of product into the cart. An existing line for
// the same product ID has its quantity increased; otherwise a new line is
// appended. Stock is not touched here.
func (c *Cart) AddProduct(product Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if i := c.indexOf(product.ID); i >= 0 {
		c.lines[i].Quantity += qty
		c.totalPrice = c.totalPrice.Add(c.lines[i].Product.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
		return nil
	}

	c.lines = append(c.lines, CartLine{Product: product, Quantity: qty})
	c.totalPrice = c.totalPrice.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
	return nil
}

// RemoveProduct drops the line for productID. Removing an absent product is a
// no-op and reports false.
func (c *Cart) RemoveProduct(productID string) (CartLine, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return CartLine{}, false
	}

	removed := c.lines[i]
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.totalPrice = c.totalPrice.Sub(removed.Subtotal())
	return removed, true
}

// Checkout turns the current lines into an Order and empties the cart.
// On error the cart is left untouched.
func (c *Cart) Checkout(customer Customer, date time.Time, orderID int64) (*Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := NewOrder(orderID, customer, date, c.lines)
	if !order.TotalAmount().Equal(c.totalPrice) {
		return nil, ErrTotalMismatch
	}

	c.Clear()
	return order, nil
}

// Clear resets the cart to empty, keeping its ID.
func (c *Cart) Clear() {
	c.lines = nil
	c.totalPrice = decimal.Zero
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{
		id:         c.id,
		lines:      c.Lines(),
		totalPrice: c.totalPrice,
	}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if SameID(c.lines[i].Product.ID, productID) {
			return i
		}
	}
	return -1
}
