package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type SubmitOrderRequest struct {
	Side   Side            `json:"side" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Price  decimal.Decimal `json:"price" binding:"required"`
}

type CancelOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type Order struct {
	ID          string           `json:"id"`
	Side        Side             `json:"side"`
	LimitPrice  decimal.Decimal  `json:"limit_price"`
	Amount      decimal.Decimal  `json:"amount"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	FilledAt    *time.Time       `json:"filled_at,omitempty"`
	FilledPrice *decimal.Decimal `json:"filled_price,omitempty"`
}

type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

type WalletResponse struct {
	Fiat  decimal.Decimal `json:"fiat"`
	Asset decimal.Decimal `json:"asset"`
}

type PriceResponse struct {
	Price      decimal.Decimal `json:"price"`
	Resolution string          `json:"resolution"`
	Timestamp  time.Time       `json:"timestamp"`
}

type PricePoint struct {
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

type PriceHistoryResponse struct {
	Points []PricePoint `json:"points"`
}

type MockModeResponse struct {
	MockMode bool            `json:"mock_mode"`
	Price    decimal.Decimal `json:"price"`
}
