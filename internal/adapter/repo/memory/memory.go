// Package memory implements the repository ports in process memory.
// It backs unit tests and local runs without a MySQL instance.
package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

type MemberRepo struct {
	mu      sync.RWMutex
	members map[string]domain.Member
}

func NewMemberRepo() *MemberRepo {
	return &MemberRepo{members: make(map[string]domain.Member)}
}

func (r *MemberRepo) Save(ctx context.Context, m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.members {
		if ex.Name == m.Name && ex.ID != m.ID {
			return domain.ErrDuplicate
		}
	}
	r.members[m.ID] = *m
	return nil
}

func (r *MemberRepo) FindOne(ctx context.Context, id string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *MemberRepo) FindByName(ctx context.Context, name string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.members {
		if m.Name == name {
			m := m
			return &m, nil
		}
	}
	return nil, domain.ErrNotFound
}

type ItemRepo struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func NewItemRepo() *ItemRepo {
	return &ItemRepo{items: make(map[string]*domain.Item)}
}

func (r *ItemRepo) Save(ctx context.Context, it *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID] = it
	return nil
}

// FindOne returns the stored item itself so stock mutations made by the
// domain are visible to subsequent reads, mirroring a shared database row.
func (r *ItemRepo) FindOne(ctx context.Context, id string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

func (r *ItemRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*domain.Item, len(ids))
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (r *ItemRepo) AddStock(ctx context.Context, id string, q int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.AddStock(q)
	return nil
}

type OrderRepo struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	inserts []string // insertion order, for stable listings
	members *MemberRepo
}

func NewOrderRepo(members *MemberRepo) *OrderRepo {
	return &OrderRepo{orders: make(map[string]*domain.Order), members: members}
}

func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		r.inserts = append(r.inserts, o.ID)
	}
	cp := *o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	r.orders[o.ID] = &cp
	return nil
}

func (r *OrderRepo) FindOne(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &cp, nil
}

func (r *OrderRepo) matches(o *domain.Order, s usecase.OrderSearch) bool {
	if s.Status != nil && o.Status != *s.Status {
		return false
	}
	if s.MemberName != "" {
		m, err := r.members.FindOne(context.Background(), o.MemberID)
		if err != nil || !strings.Contains(m.Name, s.MemberName) {
			return false
		}
	}
	return true
}

func (r *OrderRepo) Search(ctx context.Context, s usecase.OrderSearch) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Order
	for _, id := range r.inserts {
		o := r.orders[id]
		if r.matches(o, s) {
			cp := *o
			cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *OrderRepo) SearchWithMemberAndDelivery(ctx context.Context, s usecase.OrderSearch) ([]usecase.OrderWithMember, error) {
	orders, err := r.Search(ctx, s)
	if err != nil {
		return nil, err
	}
	out := make([]usecase.OrderWithMember, 0, len(orders))
	for _, o := range orders {
		name := ""
		if m, err := r.members.FindOne(ctx, o.MemberID); err == nil {
			name = m.Name
		}
		o.Lines = nil // list views do not load lines
		out = append(out, usecase.OrderWithMember{Order: o, MemberName: name})
	}
	return out, nil
}

func (r *OrderRepo) MarkCancelled(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = o.Status
	return nil
}

func (r *OrderRepo) UpdateDeliveryStatus(ctx context.Context, orderID string, st domain.DeliveryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	// COMP is terminal; out-of-order provider events must not reopen it.
	if o.Delivery.Status == domain.DeliveryCompleted {
		return nil
	}
	o.Delivery.Status = st
	return nil
}

func (r *OrderRepo) FindSimpleOrders(ctx context.Context) ([]usecase.SimpleOrderView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]usecase.SimpleOrderView, 0, len(r.inserts))
	for _, id := range r.inserts {
		o := r.orders[id]
		name := ""
		if m, err := r.members.FindOne(ctx, o.MemberID); err == nil {
			name = m.Name
		}
		out = append(out, usecase.SimpleOrderView{
			OrderID:    o.ID,
			MemberName: name,
			OrderedAt:  o.OrderedAt,
			Status:     o.Status,
			Address:    o.Delivery.Address,
		})
	}
	return out, nil
}

var (
	_ usecase.MemberRepo       = (*MemberRepo)(nil)
	_ usecase.ItemRepo         = (*ItemRepo)(nil)
	_ usecase.OrderRepo        = (*OrderRepo)(nil)
	_ usecase.SimpleOrderQuery = (*OrderRepo)(nil)
)
