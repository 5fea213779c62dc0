package domain

import "github.com/shopspring/decimal"

// Balances is a read-only snapshot of the wallet, safe to hand to API layers.
type Balances struct {
	Fiat  decimal.Decimal `json:"fiat"`
	Asset decimal.Decimal `json:"asset"`
}
