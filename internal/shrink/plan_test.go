package shrink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"halve width bound", 100, 50, 50, 50, 50, 25},
		{"fits already", 10, 10, 100, 100, 10, 10},
		{"exact fit", 64, 48, 64, 48, 64, 48},
		{"height bound", 200, 400, 1000, 100, 50, 100},
		{"ceil rounding", 10, 3, 5, 5, 5, 2},
		{"tiny factor keeps one pixel", 1000, 1, 1, 1, 1, 1},
		{"one axis fits", 300, 20, 100, 1000, 100, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.srcW, tt.srcH, tt.maxW, tt.maxH)
			require.NoError(t, err)
			assert.Equal(t, Dimensions{Width: tt.wantW, Height: tt.wantH}, got)
		})
	}
}

func TestPlan_InvalidBounds(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, maxW, maxH int
	}{
		{"zero max width", 10, 10, 0, 10},
		{"zero max height", 10, 10, 10, 0},
		{"negative max", 10, 10, -1, 5},
		{"zero source", 0, 10, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.srcW, tt.srcH, tt.maxW, tt.maxH)
			assert.ErrorIs(t, err, ErrInvalidBounds)
		})
	}
}

func TestPlan_Properties(t *testing.T) {
	sizes := []int{1, 2, 3, 7, 10, 33, 100, 257, 1024, 4001}
	for _, sw := range sizes {
		for _, sh := range sizes {
			for _, mw := range sizes {
				for _, mh := range sizes {
					got, err := Plan(sw, sh, mw, mh)
					require.NoError(t, err)

					// Never enlarges.
					assert.LessOrEqual(t, got.Width, sw)
					assert.LessOrEqual(t, got.Height, sh)
					assert.GreaterOrEqual(t, got.Width, 1)
					assert.GreaterOrEqual(t, got.Height, 1)

					if mw >= sw && mh >= sh {
						assert.Equal(t, Dimensions{Width: sw, Height: sh}, got)
						continue
					}
					// Ceiling may overshoot the box by at most one pixel.
					assert.LessOrEqual(t, got.Width, mw+1)
					assert.LessOrEqual(t, got.Height, mh+1)
				}
			}
		}
	}
}
