package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageSkip(t *testing.T) {
	tests := []struct {
		page Page
		want int64
	}{
		{Page{Number: 1, Limit: 10}, 0},
		{Page{Number: 3, Limit: 10}, 20},
		{Page{Number: 0, Limit: 10}, 0},
		{Page{Number: math.MaxInt64, Limit: 10}, math.MaxInt64},
		{Page{Number: math.MaxInt64/10 + 1, Limit: 10}, math.MaxInt64 / 10 * 10},
		{Page{Number: math.MaxInt64/10 + 2, Limit: 10}, math.MaxInt64},
		{Page{Number: math.MaxInt64, Limit: 1}, math.MaxInt64 - 1},
	}
	for _, tt := range tests {
		got := tt.page.Skip()
		assert.Equal(t, tt.want, got, "page %d limit %d", tt.page.Number, tt.page.Limit)
		assert.GreaterOrEqual(t, got, int64(0))
	}
}

func TestNewPaginated(t *testing.T) {
	res := NewPaginated[int](nil, 21, Page{Number: 2, Limit: 10})
	assert.Equal(t, []int{}, res.Data)
	assert.Equal(t, int64(3), res.Pages)
	assert.Equal(t, int64(2), res.Page)
}
