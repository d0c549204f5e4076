package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("5", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("abc", 1))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		from, lim  int
	}{
		{name: "first page", page: 1, size: 10, from: 0, lim: 10},
		{name: "third page", page: 3, size: 20, from: 40, lim: 20},
		{name: "page below one", page: 0, size: 10, from: 0, lim: 10},
		{name: "size zero falls back", page: 2, size: 0, from: 10, lim: 10},
		{name: "size above cap falls back", page: 2, size: 500, from: 10, lim: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, lim := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.lim, lim)
		})
	}
}
