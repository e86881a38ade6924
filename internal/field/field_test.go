package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkfield/inkfield/internal/model"
)

func TestBoundedFieldSize(t *testing.T) {
	f := NewBounded(DefaultBounds())
	assert.Equal(t, 100.0, f.Size())

	f = NewBounded(Bounds{MinX: 0, MaxX: 4, MinZ: 0, MaxZ: 3, MinY: -1, MaxY: 1})
	assert.Equal(t, 12.0, f.Size())
}

func TestBoundedFieldContains(t *testing.T) {
	f := NewBounded(DefaultBounds())

	assert.True(t, f.Contains(model.Position3D{}))
	assert.True(t, f.Contains(model.Position3D{X: 5, Y: 2, Z: -5}))
	assert.False(t, f.Contains(model.Position3D{X: 5.1}))
	assert.False(t, f.Contains(model.Position3D{Y: -2.5}))
	assert.False(t, f.Contains(model.Position3D{X: math.NaN()}))
}
