package kafka

import (
	"context"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

// DeliveryStatusHandler applies delivery updates from the shipping
// provider. Once a delivery is marked COMP, order cancellation is refused
// from that point on.
type DeliveryStatusHandler struct {
	Repo  usecase.OrderRepo
	Cache usecase.OrderStatusCache // optional
}

func NewDeliveryStatusHandler(repo usecase.OrderRepo, cache usecase.OrderStatusCache) *DeliveryStatusHandler {
	return &DeliveryStatusHandler{Repo: repo, Cache: cache}
}

func (h *DeliveryStatusHandler) Handle(ctx context.Context, ev usecase.DeliveryStatusChangedMsg) error {
	var st domain.DeliveryStatus
	switch ev.Status {
	case "DELIVERED":
		st = domain.DeliveryCompleted
	case "READY", "SHIPPED":
		// still cancellable; nothing to record beyond READY
		st = domain.DeliveryReady
	default:
		// unknown provider status: ack and move on
		return nil
	}

	if err := h.Repo.UpdateDeliveryStatus(ctx, ev.OrderID, st); err != nil {
		return err
	}

	if h.Cache != nil && st == domain.DeliveryCompleted {
		_ = h.Cache.SetStatus(ctx, ev.OrderID, "DELIVERED")
	}
	return nil
}
