package feed

import "papertrade/internal/domain"

// HistoryCapacity bounds the retained price observations.
const HistoryCapacity = 100

// History is a fixed-capacity ring of price points. Pushing past capacity
// evicts the oldest point.
type History struct {
	buf   []domain.PricePoint
	start int
	n     int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &History{buf: make([]domain.PricePoint, capacity)}
}

func (h *History) Push(p domain.PricePoint) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = p
		h.n++
		return
	}
	h.buf[h.start] = p
	h.start = (h.start + 1) % len(h.buf)
}

func (h *History) Len() int {
	return h.n
}

// Points returns the retained observations in chronological order.
func (h *History) Points() []domain.PricePoint {
	out := make([]domain.PricePoint, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}
