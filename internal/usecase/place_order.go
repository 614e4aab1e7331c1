package usecase

import (
	"context"
	"fmt"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
)

type PlaceOrderInput struct {
	MemberID       string
	ItemID         string
	Count          int
	IdempotencyKey string
}

type PlaceOrderOutput struct {
	OrderID    string
	TotalPrice int64
	Status     string
}

// PlaceOrder loads the member and item, creates the stock-debiting order
// line, and persists the whole aggregate in one transaction. The delivery
// goes to the member's registered address.
type PlaceOrder struct {
	orders  OrderRepo
	members MemberRepo
	items   ItemRepo
	idem    IdempotencyStore
	queue   OrderQueue
}

func NewPlaceOrder(orders OrderRepo, members MemberRepo, items ItemRepo, idem IdempotencyStore, queue OrderQueue) *PlaceOrder {
	return &PlaceOrder{orders: orders, members: members, items: items, idem: idem, queue: queue}
}

func (uc *PlaceOrder) Execute(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if in.IdempotencyKey != "" {
		// Fast path: a replayed request returns the first order id.
		if id, ok, _ := uc.idem.Recall(ctx, in.MemberID, in.IdempotencyKey); ok {
			return PlaceOrderOutput{OrderID: id, Status: string(domain.StatusOrdered)}, nil
		}
		ok, err := uc.idem.TryLock(ctx, in.MemberID, in.IdempotencyKey)
		if err != nil {
			return PlaceOrderOutput{}, fmt.Errorf("idempotency lock: %w", err)
		}
		if !ok {
			return PlaceOrderOutput{}, fmt.Errorf("idempotency key in flight: %w", domain.ErrDuplicate)
		}
	}

	member, err := uc.members.FindOne(ctx, in.MemberID)
	if err != nil {
		return PlaceOrderOutput{}, fmt.Errorf("load member %s: %w", in.MemberID, err)
	}
	item, err := uc.items.FindOne(ctx, in.ItemID)
	if err != nil {
		return PlaceOrderOutput{}, fmt.Errorf("load item %s: %w", in.ItemID, err)
	}

	// The line captures the item's current price and debits its stock.
	line, err := domain.NewOrderLine(item, item.Price, in.Count)
	if err != nil {
		return PlaceOrderOutput{}, err
	}

	order := domain.Place(member, domain.NewDelivery(member.Address), line)
	if err := uc.orders.Save(ctx, order); err != nil {
		return PlaceOrderOutput{}, fmt.Errorf("save order: %w", err)
	}

	// Best-effort direct publish; the outbox row written with the order is
	// the durable record for consumers that missed it.
	_ = uc.queue.PublishPlaced(ctx, OrderPlacedMsg{
		OrderID:    order.ID,
		MemberID:   order.MemberID,
		TotalPrice: order.TotalPrice(),
		PlacedAt:   order.OrderedAt,
	})

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.MemberID, in.IdempotencyKey, order.ID)
	}

	return PlaceOrderOutput{
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice(),
		Status:     string(order.Status),
	}, nil
}
