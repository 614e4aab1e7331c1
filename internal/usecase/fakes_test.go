package usecase_test

import (
	"context"
	"sync"

	"github.com/juhyeon1114/jpashop/internal/usecase"
)

type fakeIdemStore struct {
	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{locks: map[string]bool{}, values: map[string]string{}}
}

func (s *fakeIdemStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *fakeIdemStore) Remember(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope+":"+key] = value
	return nil
}

func (s *fakeIdemStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}

type fakeQueue struct {
	mu        sync.Mutex
	placed    []usecase.OrderPlacedMsg
	cancelled []usecase.OrderCancelledMsg
}

func (q *fakeQueue) PublishPlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.placed = append(q.placed, msg)
	return nil
}

func (q *fakeQueue) PublishCancelled(ctx context.Context, msg usecase.OrderCancelledMsg) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cancelled = append(q.cancelled, msg)
	return nil
}
