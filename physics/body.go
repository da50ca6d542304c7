package physics

import (
	"fmt"

	"github.com/lixenwraith/orbiter/vmath"
)

// BodyKind classifies a body within the system hierarchy
type BodyKind uint8

const (
	KindStar BodyKind = iota
	KindPlanet
	KindMoon
)

func (k BodyKind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	default:
		return "moon"
	}
}

// Body is a mutable simulation entity
// Influences are indices into the owning System; a body never owns them
type Body struct {
	Position   vmath.Vector
	Velocity   vmath.Vector
	Radius     float64 // meters, also the clamping distance for bodies it influences
	Mass       float64 // kg
	Influences []int
}

// NewBody creates a body at rest
func NewBody(x, y, radius, mass float64) Body {
	return Body{
		Position: vmath.NewVector(x, y),
		Radius:   radius,
		Mass:     mass,
	}
}

// AddInfluence appends an influencing body index, order is preserved
func (b *Body) AddInfluence(index int) {
	b.Influences = append(b.Influences, index)
}

// Meta carries presentation data kept parallel to System.Bodies
type Meta struct {
	Name  string
	Color string
	Kind  BodyKind
}

// System owns every body of a run; index order is creation order
type System struct {
	Bodies []Body
	Meta   []Meta
}

// NewSystem creates an empty system with room for n bodies
func NewSystem(n int) *System {
	return &System{
		Bodies: make([]Body, 0, n),
		Meta:   make([]Meta, 0, n),
	}
}

// AddBody validates and appends a body, returning its index
func (s *System) AddBody(b Body, meta Meta) (int, error) {
	if !(b.Mass > 0) || !(b.Radius > 0) {
		return -1, fmt.Errorf("%w: %q mass=%g radius=%g", ErrInvalidBody, meta.Name, b.Mass, b.Radius)
	}
	if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
		return -1, fmt.Errorf("%w: %q non-finite state", ErrInvalidBody, meta.Name)
	}

	influences := b.Influences
	b.Influences = nil
	s.Bodies = append(s.Bodies, b)
	s.Meta = append(s.Meta, meta)
	idx := len(s.Bodies) - 1

	for _, inf := range influences {
		if err := s.AddInfluence(idx, inf); err != nil {
			s.Bodies = s.Bodies[:idx]
			s.Meta = s.Meta[:idx]
			return -1, err
		}
	}
	return idx, nil
}

// AddInfluence makes body `from` pull body `to`
// from must be strictly lower than to, which keeps the influence graph acyclic
func (s *System) AddInfluence(to, from int) error {
	if to < 0 || to >= len(s.Bodies) {
		return fmt.Errorf("%w: body %d out of range", ErrInvalidInfluence, to)
	}
	if from < 0 || from >= to {
		return fmt.Errorf("%w: body %d cannot be influenced by %d", ErrInvalidInfluence, to, from)
	}
	for _, existing := range s.Bodies[to].Influences {
		if existing == from {
			return fmt.Errorf("%w: body %d already influenced by %d", ErrInvalidInfluence, to, from)
		}
	}
	s.Bodies[to].AddInfluence(from)
	return nil
}

// Len returns the number of bodies
func (s *System) Len() int {
	return len(s.Bodies)
}

// Index returns the index of the named body or -1
func (s *System) Index(name string) int {
	for i, m := range s.Meta {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// Primary returns the last listed influence, the closest parent in a satellite hierarchy, or -1
func (s *System) Primary(i int) int {
	inf := s.Bodies[i].Influences
	if len(inf) == 0 {
		return -1
	}
	return inf[len(inf)-1]
}

// Validate checks every body and influence edge
func (s *System) Validate() error {
	if len(s.Meta) != len(s.Bodies) {
		return fmt.Errorf("%w: %d bodies but %d meta entries", ErrInvalidBody, len(s.Bodies), len(s.Meta))
	}
	for i := range s.Bodies {
		b := &s.Bodies[i]
		if !(b.Mass > 0) || !(b.Radius > 0) {
			return fmt.Errorf("%w: %q mass=%g radius=%g", ErrInvalidBody, s.Meta[i].Name, b.Mass, b.Radius)
		}
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return fmt.Errorf("%w: %q non-finite state", ErrInvalidBody, s.Meta[i].Name)
		}
		for _, inf := range b.Influences {
			if inf < 0 || inf >= i {
				return fmt.Errorf("%w: body %d lists %d", ErrInvalidInfluence, i, inf)
			}
		}
	}
	return nil
}

// Clone returns a deep copy, used to restart a run from its initial state
func (s *System) Clone() *System {
	c := &System{
		Bodies: make([]Body, len(s.Bodies)),
		Meta:   make([]Meta, len(s.Meta)),
	}
	copy(c.Meta, s.Meta)
	for i, b := range s.Bodies {
		b.Influences = append([]int(nil), b.Influences...)
		c.Bodies[i] = b
	}
	return c
}
