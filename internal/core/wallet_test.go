package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallet_DebitRejectsOverdraft(t *testing.T) {
	w := NewWallet(dec(100), dec(2))

	require.NoError(t, w.DebitFiat(dec(100)))
	assert.True(t, w.Fiat().IsZero())

	err := w.DebitFiat(dec(1))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, w.Fiat().IsZero(), "failed debit must not apply")

	err = w.DebitAsset(dec(3))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, w.Asset().Equal(dec(2)))
}

func TestWallet_CreditAndBalances(t *testing.T) {
	w := NewWallet(dec(10), dec(0))
	w.CreditFiat(dec(5))
	w.CreditAsset(dec(7))

	b := w.Balances()
	assert.True(t, b.Fiat.Equal(dec(15)))
	assert.True(t, b.Asset.Equal(dec(7)))
}
