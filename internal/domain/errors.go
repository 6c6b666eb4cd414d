package domain

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrTotalMismatch   = errors.New("cart total does not match order total")
	ErrInvalidProduct  = errors.New("invalid product")
)
