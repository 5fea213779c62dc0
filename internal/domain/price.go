package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one observation of the reference price. Immutable once created.
type PricePoint struct {
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}
