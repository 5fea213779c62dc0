package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertrade/internal/api/dto"
	"papertrade/internal/core"
	"papertrade/internal/domain"
	"papertrade/internal/feed"
)

func testServer() (*HTTPServer, *core.Engine, *feed.Feed) {
	gin.SetMode(gin.TestMode)
	f := feed.New(nil)
	w := core.NewWallet(decimal.NewFromInt(10000), decimal.NewFromInt(5000))
	e := core.NewEngine(w, f, nil, feed.NewMock(f, 1))
	s := NewHTTPServer(e)
	s.RateLimit = 0 // not under test
	return s, e, f
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSubmitOrder_Created(t *testing.T) {
	s, _, _ := testServer()
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/orders", dto.SubmitOrderRequest{
		Side:   dto.Buy,
		Amount: decimal.NewFromInt(1),
		Price:  decimal.NewFromInt(3600),
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var got dto.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "PENDING", got.Status)
	assert.Nil(t, got.FilledAt)
}

func TestSubmitOrder_ErrorMapping(t *testing.T) {
	s, _, _ := testServer()
	r := s.Router()

	// unknown side -> invalid input
	rec := doJSON(t, r, http.MethodPost, "/orders", map[string]any{
		"side": "HOLD", "amount": "1", "price": "3600",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// worst case exceeds the wallet -> admission failure
	rec = doJSON(t, r, http.MethodPost, "/orders", dto.SubmitOrderRequest{
		Side:   dto.Buy,
		Amount: decimal.NewFromInt(100),
		Price:  decimal.NewFromInt(3600),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// malformed body
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelOrder_ErrorMapping(t *testing.T) {
	s, e, f := testServer()
	r := s.Router()
	ctx := context.Background()

	rec := doJSON(t, r, http.MethodPost, "/orders/cancel", dto.CancelOrderRequest{OrderID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	f.Publish(ctx, domain.PricePoint{Price: decimal.NewFromInt(3500), Timestamp: time.Now()})
	o, err := e.SubmitOrder(ctx, domain.Buy, decimal.NewFromInt(3600), decimal.NewFromInt(1))
	require.NoError(t, err)
	e.Tick(ctx)

	rec = doJSON(t, r, http.MethodPost, "/orders/cancel", dto.CancelOrderRequest{OrderID: o.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelOrder_Success(t *testing.T) {
	s, e, _ := testServer()
	r := s.Router()

	o, err := e.SubmitOrder(context.Background(), domain.Sell, decimal.NewFromInt(3400), decimal.NewFromInt(2))
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPost, "/orders/cancel", dto.CancelOrderRequest{OrderID: o.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "CANCELLED", got.Status)
}

func TestGetWallet(t *testing.T) {
	s, _, _ := testServer()
	r := s.Router()

	rec := doJSON(t, r, http.MethodGet, "/wallet", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.WalletResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Fiat.Equal(decimal.NewFromInt(10000)))
	assert.True(t, got.Asset.Equal(decimal.NewFromInt(5000)))
}

func TestGetOrders_NewestFirst(t *testing.T) {
	s, e, _ := testServer()
	r := s.Router()
	ctx := context.Background()

	first, err := e.SubmitOrder(ctx, domain.Buy, decimal.NewFromInt(3100), decimal.NewFromInt(1))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := e.SubmitOrder(ctx, domain.Sell, decimal.NewFromInt(3200), decimal.NewFromInt(1))
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.OrdersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Orders, 2)
	assert.Equal(t, second.ID, got.Orders[0].ID)
	assert.Equal(t, first.ID, got.Orders[1].ID)
}

func TestEnableMock_ReturnsWalkPrice(t *testing.T) {
	s, e, _ := testServer()
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/mock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.MockModeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.MockMode)
	assert.True(t, got.Price.GreaterThanOrEqual(decimal.NewFromInt(3000)))
	assert.True(t, got.Price.LessThanOrEqual(decimal.NewFromInt(4500)))
	assert.True(t, e.MockMode())
}

func TestGetPrice_MockMode(t *testing.T) {
	s, e, _ := testServer()
	r := s.Router()

	e.EnableMockMode(context.Background())
	rec := doJSON(t, r, http.MethodGet, "/price", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, string(feed.ResolvedMock), got.Resolution)
	assert.False(t, got.Price.IsZero())
}

func TestGetPriceHistory_Chronological(t *testing.T) {
	s, _, f := testServer()
	r := s.Router()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.Publish(ctx, domain.PricePoint{
			Price:     decimal.NewFromInt(3000 + int64(i)),
			Timestamp: time.Unix(int64(i), 0),
		})
	}

	rec := doJSON(t, r, http.MethodGet, "/price/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.PriceHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Points, 3)
	assert.True(t, got.Points[0].Price.Equal(decimal.NewFromInt(3000)))
	assert.True(t, got.Points[2].Price.Equal(decimal.NewFromInt(3002)))
}

func TestHealthz(t *testing.T) {
	s, _, _ := testServer()
	rec := doJSON(t, s.Router(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
