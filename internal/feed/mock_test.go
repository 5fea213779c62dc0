package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_StaysWithinClampInterval(t *testing.T) {
	f := New(nil)
	m := NewMock(f, 42)

	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		p := m.Step(ctx)
		assert.True(t, p.Price.GreaterThanOrEqual(mockFloor), "price %s below floor", p.Price)
		assert.True(t, p.Price.LessThanOrEqual(mockCeil), "price %s above ceil", p.Price)
	}
}

func TestMock_DeterministicUnderFixedSeed(t *testing.T) {
	ctx := context.Background()
	a := NewMock(New(nil), 7)
	b := NewMock(New(nil), 7)

	for i := 0; i < 100; i++ {
		pa := a.Step(ctx)
		pb := b.Step(ctx)
		assert.True(t, pa.Price.Equal(pb.Price))
	}
}

func TestMock_PublishesReferencePriceAndHistory(t *testing.T) {
	f := New(nil)
	m := NewMock(f, 1)

	p := m.Step(context.Background())

	cur, ok := f.Current()
	require.True(t, ok)
	assert.True(t, cur.Price.Equal(p.Price))
	require.Len(t, f.History(), 1)
}
