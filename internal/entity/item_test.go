package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemValidation(t *testing.T) {
	_, err := NewItem("GADGET", "JPA Book", 10000, 10)
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = NewItem(KindBook, "", 10000, 10)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewItem(KindBook, "JPA Book", -1, 10)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	it, err := NewItem(KindAlbum, "First Album", 15000, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, KindAlbum, it.Kind)
	assert.Equal(t, 3, it.Stock)
}

func TestAddStock(t *testing.T) {
	it, err := NewItem(KindBook, "JPA Book", 10000, 2)
	require.NoError(t, err)

	it.AddStock(5)
	assert.Equal(t, 7, it.Stock)
}

func TestRemoveStock(t *testing.T) {
	it, err := NewItem(KindBook, "JPA Book", 10000, 10)
	require.NoError(t, err)

	require.NoError(t, it.RemoveStock(4))
	assert.Equal(t, 6, it.Stock)
}

func TestRemoveStockInsufficient(t *testing.T) {
	it, err := NewItem(KindBook, "JPA Book", 10000, 10)
	require.NoError(t, err)

	err = it.RemoveStock(11)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10, it.Stock, "failed decrease must leave stock untouched")
}
