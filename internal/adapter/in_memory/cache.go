package in_memory

import (
	"context"
	"sync"

	"papertrade/internal/domain"
	"papertrade/internal/port"
)

type Cache struct {
	mu     sync.Mutex
	latest *domain.PricePoint
}

var _ port.PriceCache = (*Cache)(nil)

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) SetLatest(ctx context.Context, p domain.PricePoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy := p
	c.latest = &copy
	return nil
}

func (c *Cache) GetLatest(ctx context.Context) (*domain.PricePoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil {
		return nil, nil
	}
	copy := *c.latest
	return &copy, nil
}
