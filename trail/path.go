package trail

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"strconv"
	"strings"

	"github.com/lixenwraith/orbiter/vmath"
)

var (
	// ErrInvalidPoint marks a non-finite coordinate, see InvalidPointError
	ErrInvalidPoint = errors.New("trail: invalid point")

	// ErrInvalidCapacity rejects capacities that are not a positive power of two
	ErrInvalidCapacity = errors.New("trail: capacity must be a power of two")
)

// InvalidPointError carries the offending coordinates
type InvalidPointError struct {
	X, Y float64
}

func (e *InvalidPointError) Error() string {
	return fmt.Sprintf("trail: invalid point [%g, %g]", e.X, e.Y)
}

func (e *InvalidPointError) Unwrap() error {
	return ErrInvalidPoint
}

// PathBuffer is a fixed-capacity ring of committed trail points plus one live point
// Points are kept in simulation meters, scaling happens on output
// Oldest committed point is at (tail - size) & mask
type PathBuffer struct {
	capacity int
	mask     int
	points   []vmath.Vector
	size     int
	tail     int // next write index

	accruedDelta float64 // meters traveled since last commit
	latest       vmath.Vector
}

// New creates an empty buffer, capacity must be a power of two
func New(capacity int) (*PathBuffer, error) {
	p := &PathBuffer{}
	if err := p.Reset(capacity); err != nil {
		return nil, err
	}
	return p, nil
}

// IsPowerOfTwo reports n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

// Reset clears committed points, accrued delta and live point
// An optional new capacity reallocates the ring; otherwise the prior capacity is kept
func (p *PathBuffer) Reset(capacity ...int) error {
	newCap := p.capacity
	if len(capacity) > 0 && capacity[0] != 0 {
		newCap = capacity[0]
	}
	if !IsPowerOfTwo(newCap) {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, newCap)
	}

	if newCap != p.capacity || p.points == nil {
		p.points = make([]vmath.Vector, newCap)
		p.capacity = newCap
		p.mask = newCap - 1
	}
	p.size = 0
	p.tail = 0
	p.accruedDelta = 0
	p.latest.Clear()
	return nil
}

// AddPoint commits a point, evicting the oldest once full
// Non-finite input fails with *InvalidPointError and leaves the buffer untouched
func (p *PathBuffer) AddPoint(x, y float64) error {
	pt := vmath.Vector{X: x, Y: y}
	if !pt.IsFinite() {
		return &InvalidPointError{X: x, Y: y}
	}

	p.points[p.tail] = pt
	p.tail = (p.tail + 1) & p.mask
	if p.size < p.capacity {
		p.size++
	}
	return nil
}

// SetLatestPoint sets the uncommitted leading edge
func (p *PathBuffer) SetLatestPoint(x, y float64) error {
	pt := vmath.Vector{X: x, Y: y}
	if !pt.IsFinite() {
		return &InvalidPointError{X: x, Y: y}
	}
	p.latest = pt
	return nil
}

// ClearLatestPoint drops the live point; a zero live point is never emitted
func (p *PathBuffer) ClearLatestPoint() {
	p.latest.Clear()
}

// LatestPoint returns the live point, zero when cleared
func (p *PathBuffer) LatestPoint() vmath.Vector {
	return p.latest
}

func (p *PathBuffer) AccruePositionDelta(meters float64) {
	p.accruedDelta += meters
}

func (p *PathBuffer) ResetPositionDelta() {
	p.accruedDelta = 0
}

func (p *PathBuffer) AccruedDelta() float64 {
	return p.accruedDelta
}

func (p *PathBuffer) Len() int      { return p.size }
func (p *PathBuffer) Cap() int      { return p.capacity }
func (p *PathBuffer) Tail() int     { return p.tail }
func (p *PathBuffer) IsFull() bool  { return p.size == p.capacity }
func (p *PathBuffer) IsEmpty() bool { return p.size == 0 && p.latest.IsZero() }

// Committed yields committed points oldest first
func (p *PathBuffer) Committed() iter.Seq[vmath.Vector] {
	return func(yield func(vmath.Vector) bool) {
		start := (p.tail - p.size) & p.mask
		for n, i := 0, start; n < p.size; n, i = n+1, (i+1)&p.mask {
			if !yield(p.points[i]) {
				return
			}
		}
	}
}

// Points yields committed points oldest first, then the live point if non-zero
func (p *PathBuffer) Points() iter.Seq[vmath.Vector] {
	return func(yield func(vmath.Vector) bool) {
		for pt := range p.Committed() {
			if !yield(pt) {
				return
			}
		}
		if !p.latest.IsZero() {
			yield(p.latest)
		}
	}
}

// RenderPath serializes the trail as absolute move/line commands: "M x,y L x,y ..."
// Each coordinate passes through the supplied scale functions
func (p *PathBuffer) RenderPath(scaleX, scaleY func(float64) float64) string {
	var sb strings.Builder
	first := true
	for pt := range p.Points() {
		if first {
			sb.WriteByte('M')
			first = false
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(strconv.FormatFloat(scaleX(pt.X), 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(scaleY(pt.Y), 'f', -1, 64))
	}
	return sb.String()
}
