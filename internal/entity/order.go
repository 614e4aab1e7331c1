package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusOrdered   OrderStatus = "ORDER"
	StatusCancelled OrderStatus = "CANCEL"
)

type DeliveryStatus string

const (
	DeliveryReady     DeliveryStatus = "READY"
	DeliveryCompleted DeliveryStatus = "COMP"
)

// Delivery is owned by its Order; it carries no back-reference, the
// deliveries table holds the order id.
type Delivery struct {
	ID      string
	Address Address
	Status  DeliveryStatus
}

func NewDelivery(addr Address) Delivery {
	return Delivery{ID: uuid.NewString(), Address: addr, Status: DeliveryReady}
}

// OrderLine captures the unit price and quantity as facts of the order,
// decoupled from the item's current price. Lines come only from
// NewOrderLine, which debits the item's stock in the same step so a line
// can never exist without its stock debit.
type OrderLine struct {
	ID         string
	ItemID     string
	OrderPrice int64
	Count      int
}

func NewOrderLine(item *Item, orderPrice int64, count int) (OrderLine, error) {
	if count < 1 {
		return OrderLine{}, ErrInvalidCount
	}
	if orderPrice < 0 {
		return OrderLine{}, ErrInvalidPrice
	}
	if err := item.RemoveStock(count); err != nil {
		return OrderLine{}, err
	}
	return OrderLine{
		ID:         uuid.NewString(),
		ItemID:     item.ID,
		OrderPrice: orderPrice,
		Count:      count,
	}, nil
}

func (l OrderLine) Total() int64 {
	return l.OrderPrice * int64(l.Count)
}

// restock is not idempotent; Cancel calls it at most once per line.
func (l OrderLine) restock(item *Item) {
	item.AddStock(l.Count)
}

// Order owns its lines and delivery; member and items are referenced by id.
type Order struct {
	ID        string
	MemberID  string
	Lines     []OrderLine
	Delivery  Delivery
	OrderedAt time.Time
	Status    OrderStatus
}

// Place aggregates already-debited lines into a new order. Stock was
// adjusted at line creation; nothing here touches inventory.
func Place(member *Member, delivery Delivery, lines ...OrderLine) *Order {
	return &Order{
		ID:        uuid.NewString(),
		MemberID:  member.ID,
		Lines:     lines,
		Delivery:  delivery,
		OrderedAt: time.Now(),
		Status:    StatusOrdered,
	}
}

// Cancel moves the order to CANCEL and restocks every line. items maps
// item id to the loaded item for each of the order's lines; every
// precondition is checked before the first restock happens.
func (o *Order) Cancel(items map[string]*Item) error {
	if o.Delivery.Status == DeliveryCompleted {
		return ErrAlreadyDelivered
	}
	if o.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	for _, l := range o.Lines {
		if items[l.ItemID] == nil {
			return fmt.Errorf("cancel order %s: item %s: %w", o.ID, l.ItemID, ErrNotFound)
		}
	}
	o.Status = StatusCancelled
	for _, l := range o.Lines {
		l.restock(items[l.ItemID])
	}
	return nil
}

func (o *Order) TotalPrice() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.Total()
	}
	return total
}
