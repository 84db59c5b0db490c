package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page, size int
		wantFrom   int
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 10, wantFrom: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantFrom: 40, wantLimit: 20},
		{name: "page below one", page: 0, size: 10, wantFrom: 0, wantLimit: 10},
		{name: "size zero", page: 2, size: 0, wantFrom: 10, wantLimit: 10},
		{name: "size over cap", page: 1, size: 500, wantFrom: 0, wantLimit: 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			from, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("seven", 1))
}
