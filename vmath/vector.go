package vmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivideByZero is raised when a zero-length vector is normalized
var ErrDivideByZero = errors.New("vmath: normalize of zero-length vector")

// Vector is a mutable 2D vector in float64
// All mutating methods operate in place and return the receiver for chaining
// Validity (finite, non-NaN) is the caller's concern
type Vector struct {
	X, Y float64
}

// NewVector returns a vector initialized to (x, y)
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Set overwrites both components
func (v *Vector) Set(x, y float64) *Vector {
	v.X = x
	v.Y = y
	return v
}

// SetVector copies o into v
func (v *Vector) SetVector(o Vector) *Vector {
	v.X = o.X
	v.Y = o.Y
	return v
}

// Clear resets to origin
func (v *Vector) Clear() *Vector {
	return v.Set(0, 0)
}

func (v *Vector) Add(o Vector) *Vector {
	v.X += o.X
	v.Y += o.Y
	return v
}

func (v *Vector) Subtract(o Vector) *Vector {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

func (v *Vector) Scale(s float64) *Vector {
	v.X *= s
	v.Y *= s
	return v
}

// Invert negates both components
func (v *Vector) Invert() *Vector {
	v.X = -v.X
	v.Y = -v.Y
	return v
}

// Normalize divides by length, panics with ErrDivideByZero on zero length
// Callers must guarantee non-zero length; use TryNormalize to get an error instead
func (v *Vector) Normalize() *Vector {
	if err := v.TryNormalize(); err != nil {
		panic(err)
	}
	return v
}

// TryNormalize is Normalize returning ErrDivideByZero instead of panicking, v is untouched on error
func (v *Vector) TryNormalize() error {
	l := v.Length()
	if l == 0 {
		return ErrDivideByZero
	}
	inv := 1.0 / l
	v.X *= inv
	v.Y *= inv
	return nil
}

// Length returns the Euclidean norm
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSq returns squared magnitude without sqrt
func (v Vector) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports exact origin
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports both components are neither NaN nor infinite
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("[%g, %g]", v.X, v.Y)
}

// DotProduct returns u.x*v.x + u.y*v.y
func DotProduct(u, v Vector) float64 {
	return u.X*v.X + u.Y*v.Y
}

// Angle returns the unsigned angle between u and v in radians
// NaN when either vector has zero length
func Angle(u, v Vector) float64 {
	cosine := DotProduct(u, v) / (u.Length() * v.Length())
	// Rounding can push the cosine just outside [-1, 1]
	cosine = math.Max(-1, math.Min(1, cosine))
	return math.Acos(cosine)
}
