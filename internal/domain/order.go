package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string
type OrderStatus string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"

	Pending   OrderStatus = "PENDING"
	Filled    OrderStatus = "FILLED"
	Cancelled OrderStatus = "CANCELLED"
)

// Order is a simple limit order. FilledAt and FilledPrice are set exactly
// once, when the order transitions to FILLED; FILLED and CANCELLED are
// terminal.
type Order struct {
	ID          string
	Side        Side
	LimitPrice  decimal.Decimal
	Amount      decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
	FilledAt    *time.Time
	FilledPrice *decimal.Decimal
}

func (o *Order) Terminal() bool {
	return o.Status != Pending
}
