package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is how order dates are printed.
const DateLayout = "2006-01-02"

// Order is an immutable record of a checked-out cart.
type Order struct {
	id          int64
	customer    Customer
	date        time.Time
	lines       []CartLine
	totalAmount decimal.Decimal
}

// NewOrder copies lines and computes the total from them, ignoring whatever
// running total the source cart carried.
func NewOrder(id int64, customer Customer, date time.Time, lines []CartLine) *Order {
	copied := make([]CartLine, len(lines))
	copy(copied, lines)

	return &Order{
		id:          id,
		customer:    customer,
		date:        CalendarDate(date),
		lines:       copied,
		totalAmount: SumLines(copied),
	}
}

func (o *Order) ID() int64 { return o.id }

func (o *Order) Customer() Customer { return o.customer }

func (o *Order) Date() time.Time { return o.date }

func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }

// Lines returns a copy of the ordered lines.
func (o *Order) Lines() []CartLine {
	out := make([]CartLine, len(o.lines))
	copy(out, o.lines)
	return out
}

// SumLines folds unit price times quantity over lines.
func SumLines(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// CalendarDate drops the time-of-day part of t, keeping its location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
