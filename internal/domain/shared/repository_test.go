package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterOffset(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected int
	}{
		{"first page starts at zero", Filter{Page: 1, PageSize: 20}, 0},
		{"third page skips two pages", Filter{Page: 3, PageSize: 20}, 40},
		{"unset paging yields zero", Filter{}, 0},
		{"negative page yields zero", Filter{Page: -1, PageSize: 20}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Offset())
		})
	}
}

func TestFilterOrderClause(t *testing.T) {
	t.Run("uses the requested column and direction", func(t *testing.T) {
		f := Filter{OrderBy: "name", OrderDir: "desc"}
		assert.Equal(t, "name DESC", f.OrderClause("created_at DESC"))
	})

	t.Run("direction defaults to ascending", func(t *testing.T) {
		f := Filter{OrderBy: "name"}
		assert.Equal(t, "name ASC", f.OrderClause(""))
	})

	t.Run("direction is case insensitive", func(t *testing.T) {
		f := Filter{OrderBy: "name", OrderDir: "DESC"}
		assert.Equal(t, "name DESC", f.OrderClause(""))
	})

	t.Run("falls back to the default order", func(t *testing.T) {
		f := Filter{}
		assert.Equal(t, "created_at DESC", f.OrderClause("created_at DESC"))
	})
}

func TestNewPaginated(t *testing.T) {
	t.Run("rounds the page count up", func(t *testing.T) {
		page := NewPaginated([]int{1, 2, 3}, 41, 1, 20)
		assert.Equal(t, int64(41), page.Total)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("zero page size yields no pages", func(t *testing.T) {
		page := NewPaginated([]int{}, 10, 1, 0)
		assert.Equal(t, 0, page.TotalPages)
	})
}
