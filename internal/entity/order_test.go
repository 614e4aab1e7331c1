package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMember(t *testing.T) *Member {
	t.Helper()
	m, err := NewMember("Kim", Address{City: "Seoul", Street: "Gangga", Zipcode: "123-123"})
	require.NoError(t, err)
	return m
}

func testBook(t *testing.T, price int64, stock int) *Item {
	t.Helper()
	it, err := NewItem(KindBook, "JPA Book", price, stock)
	require.NoError(t, err)
	return it
}

func TestNewOrderLineDebitsStock(t *testing.T) {
	book := testBook(t, 10000, 10)

	line, err := NewOrderLine(book, book.Price, 2)
	require.NoError(t, err)

	assert.Equal(t, 8, book.Stock)
	assert.Equal(t, book.ID, line.ItemID)
	assert.Equal(t, int64(20000), line.Total())
}

func TestNewOrderLineInsufficientStock(t *testing.T) {
	book := testBook(t, 10000, 10)

	_, err := NewOrderLine(book, book.Price, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10, book.Stock, "no partial debit on failure")
}

func TestNewOrderLineValidation(t *testing.T) {
	book := testBook(t, 10000, 10)

	_, err := NewOrderLine(book, book.Price, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = NewOrderLine(book, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Equal(t, 10, book.Stock)
}

func TestPlaceOrder(t *testing.T) {
	member := testMember(t)
	book := testBook(t, 10000, 10)

	line, err := NewOrderLine(book, book.Price, 2)
	require.NoError(t, err)

	order := Place(member, NewDelivery(member.Address), line)

	assert.Equal(t, StatusOrdered, order.Status)
	assert.Len(t, order.Lines, 1)
	assert.Equal(t, int64(20000), order.TotalPrice())
	assert.Equal(t, 8, book.Stock)
	assert.Equal(t, DeliveryReady, order.Delivery.Status)
	assert.Equal(t, member.Address, order.Delivery.Address)
	assert.False(t, order.OrderedAt.IsZero())
}

func TestTotalPriceSumsLines(t *testing.T) {
	member := testMember(t)
	book := testBook(t, 10000, 10)
	album, err := NewItem(KindAlbum, "First Album", 15000, 5)
	require.NoError(t, err)

	l1, err := NewOrderLine(book, book.Price, 3)
	require.NoError(t, err)
	l2, err := NewOrderLine(album, album.Price, 2)
	require.NoError(t, err)

	order := Place(member, NewDelivery(member.Address), l1, l2)
	assert.Equal(t, l1.Total()+l2.Total(), order.TotalPrice())
	assert.Equal(t, int64(60000), order.TotalPrice())
}

func TestCancelRestocks(t *testing.T) {
	member := testMember(t)
	book := testBook(t, 10000, 10)

	line, err := NewOrderLine(book, book.Price, 10)
	require.NoError(t, err)
	require.Equal(t, 0, book.Stock)

	order := Place(member, NewDelivery(member.Address), line)
	require.NoError(t, order.Cancel(map[string]*Item{book.ID: book}))

	assert.Equal(t, StatusCancelled, order.Status)
	assert.Equal(t, 10, book.Stock, "cancel restores the pre-order stock")
}

func TestCancelAfterDeliveryCompleted(t *testing.T) {
	member := testMember(t)
	book := testBook(t, 10000, 10)

	line, err := NewOrderLine(book, book.Price, 2)
	require.NoError(t, err)

	order := Place(member, NewDelivery(member.Address), line)
	order.Delivery.Status = DeliveryCompleted

	err = order.Cancel(map[string]*Item{book.ID: book})
	assert.ErrorIs(t, err, ErrAlreadyDelivered)
	assert.Equal(t, StatusOrdered, order.Status)
	assert.Equal(t, 8, book.Stock, "failed cancel must not restock")
}

func TestCancelTwice(t *testing.T) {
	member := testMember(t)
	book := testBook(t, 10000, 10)

	line, err := NewOrderLine(book, book.Price, 2)
	require.NoError(t, err)

	order := Place(member, NewDelivery(member.Address), line)
	items := map[string]*Item{book.ID: book}
	require.NoError(t, order.Cancel(items))

	err = order.Cancel(items)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, 10, book.Stock, "second cancel must not double-restock")
}

func TestCancelMissingItem(t *testing.T) {
	member := testMember(t)
	book := testBook(t, 10000, 10)

	line, err := NewOrderLine(book, book.Price, 2)
	require.NoError(t, err)

	order := Place(member, NewDelivery(member.Address), line)
	err = order.Cancel(map[string]*Item{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, StatusOrdered, order.Status)
}
