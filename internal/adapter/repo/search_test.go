package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

func TestBuildOrderSearchNoFilters(t *testing.T) {
	where, args := buildOrderSearch(usecase.OrderSearch{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildOrderSearchStatusOnly(t *testing.T) {
	st := domain.StatusCancelled
	where, args := buildOrderSearch(usecase.OrderSearch{Status: &st})
	assert.Equal(t, " WHERE o.status = ?", where)
	assert.Equal(t, []any{"CANCEL"}, args)
}

func TestBuildOrderSearchNameOnly(t *testing.T) {
	where, args := buildOrderSearch(usecase.OrderSearch{MemberName: "Kim"})
	assert.Equal(t, " WHERE m.name LIKE ?", where)
	assert.Equal(t, []any{"%Kim%"}, args)
}

func TestBuildOrderSearchBoth(t *testing.T) {
	st := domain.StatusOrdered
	where, args := buildOrderSearch(usecase.OrderSearch{Status: &st, MemberName: "Kim"})
	assert.Equal(t, " WHERE o.status = ? AND m.name LIKE ?", where)
	assert.Equal(t, []any{"ORDER", "%Kim%"}, args)
}
