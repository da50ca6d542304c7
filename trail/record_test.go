package trail

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pixelScale is a fixed scaler with 1 pixel per metersPerPixel meters
type pixelScale struct {
	metersPerPixel float64
}

func (s pixelScale) ScaleX(x float64) float64  { return x / s.metersPerPixel }
func (s pixelScale) ScaleY(y float64) float64  { return y / s.metersPerPixel }
func (s pixelScale) LengthX(w float64) float64 { return w / s.metersPerPixel }

func TestRecordSubPixelUpdatesDoNotCommit(t *testing.T) {
	p, err := New(16)
	require.NoError(t, err)
	s := pixelScale{metersPerPixel: 1e9}

	// 39 updates of 0.1 px each stay at or below the 4 px threshold
	x := 0.0
	for range 39 {
		x += 1e8
		committed, err := Record(p, s, x, 0, 1e8, 4)
		require.NoError(t, err)
		assert.False(t, committed)
	}

	assert.Equal(t, 0, p.Len())
	assert.InDelta(t, 3.9e9, p.AccruedDelta(), 1)
	assert.Equal(t, x, p.LatestPoint().X, "live point tracks the body")
}

func TestRecordLargeUpdateCommitsOnce(t *testing.T) {
	p, err := New(16)
	require.NoError(t, err)
	s := pixelScale{metersPerPixel: 1e9}

	committed, err := Record(p, s, 5e9, 0, 5e9, 4)
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 0.0, p.AccruedDelta())
	assert.True(t, p.LatestPoint().IsZero())

	committed, err = Record(p, s, 5.1e9, 0, 1e8, 4)
	require.NoError(t, err)
	assert.False(t, committed)
	assert.Equal(t, 1, p.Len())
}

func TestRecordAccumulatesAcrossUpdates(t *testing.T) {
	p, err := New(16)
	require.NoError(t, err)
	s := pixelScale{metersPerPixel: 1}

	commits := 0
	for range 100 {
		ok, err := Record(p, s, 0, 0, 1, 4)
		require.NoError(t, err)
		if ok {
			commits++
		}
	}
	// Commit happens on every 5th update (accrued 5 > 4)
	assert.Equal(t, 20, commits)
	assert.Equal(t, 16, p.Len())
}

func TestRecordPropagatesInvalidPoint(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)
	s := pixelScale{metersPerPixel: 1}

	_, err = Record(p, s, math.NaN(), 0, 10, 4)
	assert.ErrorIs(t, err, ErrInvalidPoint)
	assert.Equal(t, 0, p.Len())

	_, err = Record(p, s, math.Inf(1), 0, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}
