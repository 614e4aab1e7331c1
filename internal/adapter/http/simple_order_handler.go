package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juhyeon1114/jpashop/internal/logging"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

// SimpleOrderHandler serves the flat list views. Two deliberate fetch
// strategies are exposed: a joined load that brings member and delivery
// back with the orders in one round trip, and a column projection that
// never materializes entities at all.
type SimpleOrderHandler struct {
	orders     usecase.OrderRepo
	projection usecase.SimpleOrderQuery
}

func NewSimpleOrderHandler(orders usecase.OrderRepo, projection usecase.SimpleOrderQuery) *SimpleOrderHandler {
	return &SimpleOrderHandler{orders: orders, projection: projection}
}

// List renders orders via the joined variant.
// GET /v1/simple-orders?status=&memberName=
func (h *SimpleOrderHandler) List(c *gin.Context) {
	search, ok := parseOrderSearch(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	rows, err := h.orders.SearchWithMemberAndDelivery(ctx, search)
	if err != nil {
		logging.From(c).Error("simple order list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	out := make([]usecase.SimpleOrderView, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.SimpleOrderView{
			OrderID:    row.Order.ID,
			MemberName: row.MemberName,
			OrderedAt:  row.Order.OrderedAt,
			Status:     row.Order.Status,
			Address:    row.Order.Delivery.Address,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListProjected renders the same shape straight from the projection query.
// GET /v1/simple-orders/projection
func (h *SimpleOrderHandler) ListProjected(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	views, err := h.projection.FindSimpleOrders(ctx)
	if err != nil {
		logging.From(c).Error("simple order projection failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	if views == nil {
		views = []usecase.SimpleOrderView{}
	}
	c.JSON(http.StatusOK, views)
}
