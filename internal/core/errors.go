package core

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidState      = errors.New("order is not pending")
)
