package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/logging"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

type OrderHandler struct {
	place  *usecase.PlaceOrder
	cancel *usecase.CancelOrder
	query  usecase.OrderRepo
}

func NewOrderHandler(place *usecase.PlaceOrder, cancel *usecase.CancelOrder, query usecase.OrderRepo) *OrderHandler {
	return &OrderHandler{place: place, cancel: cancel, query: query}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrAlreadyDelivered),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type placeOrderReq struct {
	MemberID string `json:"memberId" binding:"required"`
	ItemID   string `json:"itemId" binding:"required"`
	Count    int    `json:"count" binding:"required,gte=1"`
}

type placeOrderResp struct {
	OrderID    string `json:"orderId"`
	TotalPrice int64  `json:"totalPrice"`
	Status     string `json:"status"`
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated requests

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	out, err := h.place.Execute(ctx, usecase.PlaceOrderInput{
		MemberID:       req.MemberID,
		ItemID:         req.ItemID,
		Count:          req.Count,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		logging.From(c).Warn("place order failed", "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, placeOrderResp{
		OrderID:    out.OrderID,
		TotalPrice: out.TotalPrice,
		Status:     out.Status,
	})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.cancel.Execute(ctx, c.Param("id")); err != nil {
		logging.From(c).Warn("cancel order failed", "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.StatusCancelled)})
}

type orderLineResp struct {
	ItemID     string `json:"itemId"`
	OrderPrice int64  `json:"orderPrice"`
	Count      int    `json:"count"`
	Total      int64  `json:"total"`
}

type orderResp struct {
	OrderID    string             `json:"orderId"`
	MemberID   string             `json:"memberId"`
	Status     domain.OrderStatus `json:"status"`
	OrderedAt  time.Time          `json:"orderDate"`
	TotalPrice int64              `json:"totalPrice"`
	Lines      []orderLineResp    `json:"lines"`
	Delivery   deliveryResp       `json:"delivery"`
}

type deliveryResp struct {
	Status  domain.DeliveryStatus `json:"status"`
	Address domain.Address        `json:"address"`
}

func toOrderResp(o *domain.Order) orderResp {
	lines := make([]orderLineResp, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResp{
			ItemID:     l.ItemID,
			OrderPrice: l.OrderPrice,
			Count:      l.Count,
			Total:      l.Total(),
		})
	}
	return orderResp{
		OrderID:    o.ID,
		MemberID:   o.MemberID,
		Status:     o.Status,
		OrderedAt:  o.OrderedAt,
		TotalPrice: o.TotalPrice(),
		Lines:      lines,
		Delivery:   deliveryResp{Status: o.Delivery.Status, Address: o.Delivery.Address},
	}
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	o, err := h.query.FindOne(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toOrderResp(o))
}

// SearchOrders loads full aggregates; the filter fields are both optional.
// GET /v1/orders?status=CANCEL&memberName=Kim
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	search, ok := parseOrderSearch(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.query.Search(ctx, search)
	if err != nil {
		logging.From(c).Error("order search failed", "error", err)
		c.JSON(statusFor(err), gin.H{"error": "internal"})
		return
	}

	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResp(o))
	}
	c.JSON(http.StatusOK, out)
}

func parseOrderSearch(c *gin.Context) (usecase.OrderSearch, bool) {
	var s usecase.OrderSearch
	if raw := c.Query("status"); raw != "" {
		st := domain.OrderStatus(raw)
		if st != domain.StatusOrdered && st != domain.StatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return s, false
		}
		s.Status = &st
	}
	s.MemberName = c.Query("memberName")
	return s, true
}
