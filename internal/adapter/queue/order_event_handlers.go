package queue

import (
	"context"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

// OrderPlacedHandler warms the status cache so reads right after
// placement skip the database. Safe to replay.
type OrderPlacedHandler struct {
	Cache usecase.OrderStatusCache
}

func NewOrderPlacedHandler(cache usecase.OrderStatusCache) *OrderPlacedHandler {
	return &OrderPlacedHandler{Cache: cache}
}

// HandlePlaced is used with the JSON adapter (queue.JSONHandler[usecase.OrderPlacedMsg]).
func (h *OrderPlacedHandler) HandlePlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error {
	return h.Cache.SetStatus(ctx, msg.OrderID, string(domain.StatusOrdered))
}

type OrderCancelledHandler struct {
	Cache usecase.OrderStatusCache
}

func NewOrderCancelledHandler(cache usecase.OrderStatusCache) *OrderCancelledHandler {
	return &OrderCancelledHandler{Cache: cache}
}

func (h *OrderCancelledHandler) HandleCancelled(ctx context.Context, msg usecase.OrderCancelledMsg) error {
	return h.Cache.SetStatus(ctx, msg.OrderID, string(domain.StatusCancelled))
}
