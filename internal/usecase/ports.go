package usecase

import (
	"context"
	"time"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
)

// OrderSearch toggles predicates by presence: a nil Status or empty
// MemberName leaves the corresponding clause out of the query.
type OrderSearch struct {
	Status     *domain.OrderStatus
	MemberName string
}

// OrderWithMember pairs an order with its member's name, produced by the
// single-round-trip search variant. Lines are not loaded for list views.
type OrderWithMember struct {
	Order      *domain.Order
	MemberName string
}

// SimpleOrderView is the column-level projection for the list endpoint;
// no entity graph is materialized behind it.
type SimpleOrderView struct {
	OrderID    string             `json:"orderId"`
	MemberName string             `json:"memberName"`
	OrderedAt  time.Time          `json:"orderDate"`
	Status     domain.OrderStatus `json:"status"`
	Address    domain.Address     `json:"address"`
}

// OrderRepo is the persistence boundary for the order aggregate. Save and
// MarkCancelled each run in a single transaction covering the aggregate,
// the stock adjustments, and the outbox row. UpdateDeliveryStatus treats
// a completed delivery as terminal: a non-COMP status applied after COMP
// is a no-op, not an error.
type OrderRepo interface {
	Save(ctx context.Context, o *domain.Order) error
	FindOne(ctx context.Context, id string) (*domain.Order, error)
	Search(ctx context.Context, s OrderSearch) ([]*domain.Order, error)
	SearchWithMemberAndDelivery(ctx context.Context, s OrderSearch) ([]OrderWithMember, error)
	MarkCancelled(ctx context.Context, o *domain.Order) error
	UpdateDeliveryStatus(ctx context.Context, orderID string, st domain.DeliveryStatus) error
}

// SimpleOrderQuery fetches only the projected columns.
type SimpleOrderQuery interface {
	FindSimpleOrders(ctx context.Context) ([]SimpleOrderView, error)
}

type MemberRepo interface {
	Save(ctx context.Context, m *domain.Member) error
	FindOne(ctx context.Context, id string) (*domain.Member, error)
	FindByName(ctx context.Context, name string) (*domain.Member, error)
}

type ItemRepo interface {
	Save(ctx context.Context, it *domain.Item) error
	FindOne(ctx context.Context, id string) (*domain.Item, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Item, error)
	AddStock(ctx context.Context, id string, q int) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OrderStatusCache interface {
	SetStatus(ctx context.Context, orderID, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}

// OrderQueue publishes order lifecycle events. Publishing is best-effort:
// the outbox row written with the aggregate is the durable record.
type OrderQueue interface {
	PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error
	PublishCancelled(ctx context.Context, msg OrderCancelledMsg) error
}
