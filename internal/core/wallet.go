package core

import (
	"fmt"

	"github.com/shopspring/decimal"

	"papertrade/internal/domain"
)

// Wallet holds the two sandbox balances. Both are non-negative at all times;
// any debit that would break that is rejected before it applies. The wallet
// itself is not safe for concurrent use; the engine mutex guards it.
type Wallet struct {
	fiat  decimal.Decimal
	asset decimal.Decimal
}

func NewWallet(fiat, asset decimal.Decimal) *Wallet {
	return &Wallet{fiat: fiat, asset: asset}
}

func (w *Wallet) Fiat() decimal.Decimal {
	return w.fiat
}

func (w *Wallet) Asset() decimal.Decimal {
	return w.asset
}

func (w *Wallet) Balances() domain.Balances {
	return domain.Balances{Fiat: w.fiat, Asset: w.asset}
}

func (w *Wallet) DebitFiat(v decimal.Decimal) error {
	if w.fiat.LessThan(v) {
		return fmt.Errorf("%w: fiat %s < %s", ErrInsufficientFunds, w.fiat, v)
	}
	w.fiat = w.fiat.Sub(v)
	return nil
}

func (w *Wallet) CreditFiat(v decimal.Decimal) {
	w.fiat = w.fiat.Add(v)
}

func (w *Wallet) DebitAsset(v decimal.Decimal) error {
	if w.asset.LessThan(v) {
		return fmt.Errorf("%w: asset %s < %s", ErrInsufficientFunds, w.asset, v)
	}
	w.asset = w.asset.Sub(v)
	return nil
}

func (w *Wallet) CreditAsset(v decimal.Decimal) {
	w.asset = w.asset.Add(v)
}
