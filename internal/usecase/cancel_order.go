package usecase

import (
	"context"
	"fmt"
	"time"
)

// CancelOrder restocks every line of the order and moves it to CANCEL.
// It fails before any mutation when the delivery already completed.
type CancelOrder struct {
	orders OrderRepo
	items  ItemRepo
	queue  OrderQueue
}

func NewCancelOrder(orders OrderRepo, items ItemRepo, queue OrderQueue) *CancelOrder {
	return &CancelOrder{orders: orders, items: items, queue: queue}
}

func (uc *CancelOrder) Execute(ctx context.Context, orderID string) error {
	order, err := uc.orders.FindOne(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", orderID, err)
	}

	ids := make([]string, 0, len(order.Lines))
	seen := make(map[string]bool, len(order.Lines))
	for _, l := range order.Lines {
		if !seen[l.ItemID] {
			seen[l.ItemID] = true
			ids = append(ids, l.ItemID)
		}
	}
	items, err := uc.items.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	if err := order.Cancel(items); err != nil {
		return err
	}
	if err := uc.orders.MarkCancelled(ctx, order); err != nil {
		return fmt.Errorf("persist cancel: %w", err)
	}

	_ = uc.queue.PublishCancelled(ctx, OrderCancelledMsg{
		OrderID:     order.ID,
		MemberID:    order.MemberID,
		CancelledAt: time.Now(),
	})
	return nil
}
