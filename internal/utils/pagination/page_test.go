package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                 string
		inNumber, inSize     int
		wantNumber, wantSize int
	}{
		{"defaults", 0, 0, 1, 10},
		{"kept", 3, 20, 3, 20},
		{"clamped", 2, 500, 2, 50},
		{"negative", -1, -1, 1, 10},
		{"page number clamped", math.MaxInt, 10, MaxPageNumber, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, s := NormalizePage(tt.inNumber, tt.inSize)
			assert.Equal(t, tt.wantNumber, n)
			assert.Equal(t, tt.wantSize, s)
		})
	}
}

func TestNewMetadata(t *testing.T) {
	m := NewMetadata(25, 2, 10)
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasPrevious)
	assert.True(t, m.HasNext)

	last := NewMetadata(25, 3, 10)
	assert.False(t, last.HasNext)

	empty := NewMetadata(0, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasPrevious)
	assert.False(t, empty.HasNext)
}

func TestMetadataHeader(t *testing.T) {
	h := NewMetadata(11, 1, 10).Header()
	assert.JSONEq(t, `{"CurrentPage":1,"TotalPages":2,"PageSize":10,"TotalCount":11,"HasPrevious":false,"HasNext":true}`, h)
}
