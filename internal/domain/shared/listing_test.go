package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListOptions(t *testing.T) {
	tests := []struct {
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{0, 0, 1, DefaultPageSize, 0},
		{3, 10, 3, 10, 20},
		{2, 500, 2, MaxPageSize, MaxPageSize},
		{-4, -1, 1, DefaultPageSize, 0},
	}
	for _, tt := range tests {
		o := NewListOptions(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, o.Page)
		assert.Equal(t, tt.wantSize, o.PageSize)
		assert.Equal(t, tt.wantOffset, o.Offset())
		assert.Equal(t, "created_at", o.OrderBy)
	}
}
