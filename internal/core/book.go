package core

import "papertrade/internal/domain"

// Book is the append-only order collection. Orders are never removed, only
// status-transitioned, so the slice doubles as the submission order.
type Book struct {
	orders []*domain.Order
	byID   map[string]*domain.Order
}

func NewBook() *Book {
	return &Book{byID: make(map[string]*domain.Order)}
}

func (b *Book) Append(o *domain.Order) {
	b.orders = append(b.orders, o)
	b.byID[o.ID] = o
}

func (b *Book) Get(id string) (*domain.Order, bool) {
	o, ok := b.byID[id]
	return o, ok
}

// All returns the live orders in insertion order. Callers must not retain
// the slice across engine calls; the engine hands out copies at its boundary.
func (b *Book) All() []*domain.Order {
	return b.orders
}

func (b *Book) Len() int {
	return len(b.orders)
}
