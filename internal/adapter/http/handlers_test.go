package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juhyeon1114/jpashop/internal/adapter/repo/memory"
	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

type nopIdem struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *nopIdem) TryLock(ctx context.Context, scope, key string) (bool, error) { return true, nil }

func (s *nopIdem) Remember(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[scope+":"+key] = value
	return nil
}

func (s *nopIdem) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}

type nopQueue struct{}

func (nopQueue) PublishPlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error { return nil }

func (nopQueue) PublishCancelled(ctx context.Context, msg usecase.OrderCancelledMsg) error {
	return nil
}

type testEnv struct {
	router  *gin.Engine
	members *memory.MemberRepo
	items   *memory.ItemRepo
	orders  *memory.OrderRepo

	member *domain.Member
	book   *domain.Item
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		members: memory.NewMemberRepo(),
		items:   memory.NewItemRepo(),
	}
	env.orders = memory.NewOrderRepo(env.members)

	m, err := domain.NewMember("Kim", domain.Address{City: "Seoul", Street: "Gangga", Zipcode: "123-123"})
	require.NoError(t, err)
	require.NoError(t, env.members.Save(context.Background(), m))
	env.member = m

	b, err := domain.NewItem(domain.KindBook, "JPA Book", 10000, 10)
	require.NoError(t, err)
	require.NoError(t, env.items.Save(context.Background(), b))
	env.book = b

	placeUC := usecase.NewPlaceOrder(env.orders, env.members, env.items, &nopIdem{}, nopQueue{})
	cancelUC := usecase.NewCancelOrder(env.orders, env.items, nopQueue{})
	registerUC := usecase.NewRegisterMember(env.members)

	orders := NewOrderHandler(placeUC, cancelUC, env.orders)
	simple := NewSimpleOrderHandler(env.orders, env.orders)
	membersH := NewMemberHandler(registerUC, env.members)
	itemsH := NewItemHandler(env.items)

	r := gin.New()
	r.POST("/v1/members", membersH.Register)
	r.POST("/v1/items", itemsH.CreateItem)
	r.POST("/v1/items/:id/stock", itemsH.AddStock)
	r.GET("/v1/items/:id", itemsH.GetItemByID)
	r.POST("/v1/orders", orders.PlaceOrder)
	r.POST("/v1/orders/:id/cancel", orders.CancelOrder)
	r.GET("/v1/orders", orders.SearchOrders)
	r.GET("/v1/orders/:id", orders.GetOrderByID)
	r.GET("/v1/simple-orders", simple.List)
	r.GET("/v1/simple-orders/projection", simple.ListProjected)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) placeOrder(t *testing.T, count int) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/orders", gin.H{
		"memberId": e.member.ID,
		"itemId":   e.book.ID,
		"count":    count,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.OrderID
}

func TestPlaceOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/orders", gin.H{
		"memberId": env.member.ID,
		"itemId":   env.book.ID,
		"count":    2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		OrderID    string `json:"orderId"`
		TotalPrice int64  `json:"totalPrice"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, int64(20000), resp.TotalPrice)
	assert.Equal(t, "ORDER", resp.Status)
	assert.Equal(t, 8, env.book.Stock)
}

func TestPlaceOrderEndpointInsufficientStock(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/orders", gin.H{
		"memberId": env.member.ID,
		"itemId":   env.book.ID,
		"count":    11,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 10, env.book.Stock)
}

func TestPlaceOrderEndpointBadRequest(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/orders", gin.H{"memberId": env.member.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.placeOrder(t, 10)
	require.Equal(t, 0, env.book.Stock)

	w := env.do(t, http.MethodPost, "/v1/orders/"+orderID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 10, env.book.Stock)

	got := env.do(t, http.MethodGet, "/v1/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), `"status":"CANCEL"`)
}

func TestCancelOrderEndpointAlreadyDelivered(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.placeOrder(t, 2)
	require.NoError(t, env.orders.UpdateDeliveryStatus(context.Background(), orderID, domain.DeliveryCompleted))

	w := env.do(t, http.MethodPost, "/v1/orders/"+orderID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 8, env.book.Stock)
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchOrdersFilters(t *testing.T) {
	env := newTestEnv(t)
	first := env.placeOrder(t, 1)
	second := env.placeOrder(t, 1)

	w := env.do(t, http.MethodPost, "/v1/orders/"+second+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all []struct {
		OrderID string             `json:"orderId"`
		Status  domain.OrderStatus `json:"status"`
	}

	w = env.do(t, http.MethodGet, "/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = env.do(t, http.MethodGet, "/v1/orders?status=CANCEL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, second, all[0].OrderID)

	w = env.do(t, http.MethodGet, "/v1/orders?status=ORDER&memberName=Kim", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, first, all[0].OrderID)

	w = env.do(t, http.MethodGet, "/v1/orders?memberName=Park", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Empty(t, all)

	w = env.do(t, http.MethodGet, "/v1/orders?status=SHIPPED", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimpleOrderEndpoints(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.placeOrder(t, 2)

	for _, path := range []string{"/v1/simple-orders", "/v1/simple-orders/projection"} {
		w := env.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		var views []usecase.SimpleOrderView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
		require.Len(t, views, 1, path)
		assert.Equal(t, orderID, views[0].OrderID)
		assert.Equal(t, "Kim", views[0].MemberName)
		assert.Equal(t, domain.StatusOrdered, views[0].Status)
		assert.Equal(t, env.member.Address, views[0].Address)
	}
}

func TestRegisterMemberEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/members", gin.H{
		"name":    "Lee",
		"address": gin.H{"city": "Busan", "street": "Haeundae", "zipcode": "48094"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/v1/members", gin.H{"name": "Lee"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestItemEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/items", gin.H{
		"kind":   "ALBUM",
		"name":   "First Album",
		"price":  15000,
		"stock":  5,
		"artist": "IU",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ItemID string `json:"itemId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPost, "/v1/items/"+created.ItemID+"/stock", gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/v1/items/"+created.ItemID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock":8`)
	assert.Contains(t, w.Body.String(), `"artist":"IU"`)

	w = env.do(t, http.MethodPost, "/v1/items", gin.H{"kind": "GADGET", "name": "X", "price": 1, "stock": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
