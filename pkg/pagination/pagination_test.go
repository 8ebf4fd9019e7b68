package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParamsValidate(t *testing.T) {
	params := &PaginationParams{Page: 0, PerPage: 0}
	params.Validate()
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 15, params.PerPage)

	params = &PaginationParams{Page: 3, PerPage: 500}
	params.Validate()
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 100, params.PerPage)
}

func TestPaginationParamsOffset(t *testing.T) {
	params := &PaginationParams{Page: 1, PerPage: 15}
	assert.Equal(t, 0, params.Offset())

	params = &PaginationParams{Page: 4, PerPage: 20}
	assert.Equal(t, 60, params.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	pag = NewPagination(1, 15, 10)
	assert.Equal(t, 1, pag.TotalPages)
	assert.False(t, pag.HasNext)
	assert.False(t, pag.HasPrev)

	pag = NewPagination(1, 15, 0)
	assert.Equal(t, 0, pag.TotalPages)
	assert.False(t, pag.HasNext)
}

func TestNewPaginatedResult(t *testing.T) {
	items := []string{"a", "b"}
	result := NewPaginatedResult(items, NewPagination(1, 15, 2))
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
