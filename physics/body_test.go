package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBodyRejectsInvalid(t *testing.T) {
	sys := NewSystem(1)

	_, err := sys.AddBody(NewBody(0, 0, 0, 1), Meta{Name: "flat"})
	assert.ErrorIs(t, err, ErrInvalidBody)

	_, err = sys.AddBody(NewBody(0, 0, 1, -1), Meta{Name: "negative"})
	assert.ErrorIs(t, err, ErrInvalidBody)

	_, err = sys.AddBody(NewBody(math.NaN(), 0, 1, 1), Meta{Name: "nan"})
	assert.ErrorIs(t, err, ErrInvalidBody)

	assert.Equal(t, 0, sys.Len())
}

func TestAddInfluenceOrdering(t *testing.T) {
	sys := NewSystem(3)
	for _, name := range []string{"a", "b", "c"} {
		_, err := sys.AddBody(NewBody(0, 0, 1, 1), Meta{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, sys.AddInfluence(2, 0))
	require.NoError(t, sys.AddInfluence(2, 1))
	assert.Equal(t, []int{0, 1}, sys.Bodies[2].Influences)
	assert.Equal(t, 1, sys.Primary(2))
	assert.Equal(t, -1, sys.Primary(0))

	assert.ErrorIs(t, sys.AddInfluence(1, 1), ErrInvalidInfluence, "self")
	assert.ErrorIs(t, sys.AddInfluence(0, 2), ErrInvalidInfluence, "forward edge")
	assert.ErrorIs(t, sys.AddInfluence(2, 0), ErrInvalidInfluence, "duplicate")
	assert.ErrorIs(t, sys.AddInfluence(5, 0), ErrInvalidInfluence, "out of range")
}

func TestAddBodyWithPresetInfluences(t *testing.T) {
	sys := NewSystem(2)
	_, err := sys.AddBody(NewBody(0, 0, 1, 1), Meta{Name: "star"})
	require.NoError(t, err)

	bad := NewBody(1, 0, 1, 1)
	bad.AddInfluence(1)
	_, err = sys.AddBody(bad, Meta{Name: "self"})
	assert.ErrorIs(t, err, ErrInvalidInfluence)
	assert.Equal(t, 1, sys.Len(), "failed body must be rolled back")

	good := NewBody(1, 0, 1, 1)
	good.AddInfluence(0)
	idx, err := sys.AddBody(good, Meta{Name: "planet"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, sys.Index("planet"))
	assert.Equal(t, -1, sys.Index("missing"))
	assert.NoError(t, sys.Validate())
}

func TestValidateCatchesCorruptedState(t *testing.T) {
	sys := NewSystem(2)
	_, err := sys.AddBody(NewBody(0, 0, 1, 1), Meta{Name: "a"})
	require.NoError(t, err)
	_, err = sys.AddBody(NewBody(1, 0, 1, 1), Meta{Name: "b"})
	require.NoError(t, err)

	sys.Bodies[0].Influences = []int{1}
	assert.ErrorIs(t, sys.Validate(), ErrInvalidInfluence)

	sys.Bodies[0].Influences = nil
	sys.Bodies[1].Velocity.Set(math.Inf(1), 0)
	assert.ErrorIs(t, sys.Validate(), ErrInvalidBody)
}

func TestCloneIsDeep(t *testing.T) {
	sys := NewSystem(2)
	_, err := sys.AddBody(NewBody(0, 0, 1, 1), Meta{Name: "a"})
	require.NoError(t, err)
	b := NewBody(1, 0, 1, 1)
	b.AddInfluence(0)
	_, err = sys.AddBody(b, Meta{Name: "b"})
	require.NoError(t, err)

	c := sys.Clone()
	c.Bodies[1].Position.Set(9, 9)
	c.Bodies[1].Influences[0] = 42
	c.Meta[1].Name = "changed"

	assert.Equal(t, 1.0, sys.Bodies[1].Position.X)
	assert.Equal(t, []int{0}, sys.Bodies[1].Influences)
	assert.Equal(t, "b", sys.Meta[1].Name)
}

func TestBodyKindString(t *testing.T) {
	assert.Equal(t, "star", KindStar.String())
	assert.Equal(t, "planet", KindPlanet.String())
	assert.Equal(t, "moon", KindMoon.String())
}
