package port

import (
	"context"

	"papertrade/internal/domain"
)

// PriceCache mirrors the latest reference price outside the process. Lookups
// are best-effort: a miss is (nil, nil), not an error.
type PriceCache interface {
	SetLatest(ctx context.Context, p domain.PricePoint) error
	GetLatest(ctx context.Context) (*domain.PricePoint, error)
}
