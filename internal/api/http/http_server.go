package http

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"papertrade/internal/api/dto"
	"papertrade/internal/core"
	"papertrade/internal/domain"
	"papertrade/internal/middleware"
)

type HTTPServer struct {
	Eng *core.Engine

	// RateLimit is the minimum spacing between requests per client.
	// Zero disables limiting.
	RateLimit time.Duration
}

func NewHTTPServer(eng *core.Engine) *HTTPServer {
	return &HTTPServer{Eng: eng, RateLimit: time.Millisecond * 100}
}

func (s *HTTPServer) Router() *gin.Engine {
	r := gin.Default()

	rl := middleware.NewRateLimiter(s.RateLimit)
	r.Use(rl.Middleware())

	r.GET("/healthz", s.healthz)
	r.GET("/wallet", s.getWallet)
	r.GET("/price", s.getPrice)
	r.GET("/price/history", s.getPriceHistory)
	r.GET("/orders", s.getOrders)
	r.POST("/orders", s.submitOrder)
	r.POST("/orders/cancel", s.cancelOrder)
	r.POST("/mock", s.enableMock)

	return r
}

func (s *HTTPServer) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *HTTPServer) healthz(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *HTTPServer) getWallet(c *gin.Context) {
	b := s.Eng.Balances()
	c.JSON(http.StatusOK, dto.WalletResponse{Fiat: b.Fiat, Asset: b.Asset})
}

func (s *HTTPServer) getPrice(c *gin.Context) {
	point, res := s.Eng.CurrentPrice(c.Request.Context())
	c.JSON(http.StatusOK, dto.PriceResponse{
		Price:      point.Price,
		Resolution: string(res),
		Timestamp:  point.Timestamp,
	})
}

func (s *HTTPServer) getPriceHistory(c *gin.Context) {
	points := s.Eng.PriceHistory()
	resp := dto.PriceHistoryResponse{Points: make([]dto.PricePoint, len(points))}
	for i, p := range points {
		resp.Points[i] = dto.PricePoint{Price: p.Price, Timestamp: p.Timestamp}
	}
	c.JSON(http.StatusOK, resp)
}

// getOrders lists every order, newest first (the presentation order of the
// original client).
func (s *HTTPServer) getOrders(c *gin.Context) {
	orders := s.Eng.Orders()
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	resp := dto.OrdersResponse{Orders: make([]dto.Order, len(orders))}
	for i := range orders {
		resp.Orders[i] = convertOrder(&orders[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) submitOrder(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := s.Eng.SubmitOrder(c.Request.Context(), domain.Side(req.Side), req.Price, req.Amount)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, convertOrder(o))
}

func (s *HTTPServer) cancelOrder(c *gin.Context) {
	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := s.Eng.CancelOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, convertOrder(o))
}

func (s *HTTPServer) enableMock(c *gin.Context) {
	point := s.Eng.EnableMockMode(c.Request.Context())
	c.JSON(http.StatusOK, dto.MockModeResponse{MockMode: true, Price: point.Price})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func convertOrder(o *domain.Order) dto.Order {
	return dto.Order{
		ID:          o.ID,
		Side:        dto.Side(o.Side),
		LimitPrice:  o.LimitPrice,
		Amount:      o.Amount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		FilledAt:    o.FilledAt,
		FilledPrice: o.FilledPrice,
	}
}
