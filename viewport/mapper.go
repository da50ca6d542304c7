package viewport

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidViewport rejects non-positive viewport dimensions or field widths
var ErrInvalidViewport = errors.New("viewport: invalid dimensions")

// Mapper converts between simulation meters and display units (pixels or terminal cells)
// The origin sits at the viewport center; vertical scale follows the viewport aspect so circles stay round
type Mapper struct {
	width, height int
	pixelAspect   float64 // display unit height over width, 1 for square pixels

	fieldWidth    float64 // horizontal field of view in meters
	minFieldWidth float64

	// Derived on every change
	halfWidth        float64
	halfHeight       float64
	halfWidthMeters  float64
	halfHeightMeters float64
}

// New creates a mapper for a width x height viewport showing fieldWidth meters horizontally
func New(width, height int, fieldWidth float64) (*Mapper, error) {
	m := &Mapper{pixelAspect: 1, fieldWidth: fieldWidth}
	if err := m.Resize(width, height); err != nil {
		return nil, err
	}
	if err := m.SetFieldWidth(fieldWidth); err != nil {
		return nil, err
	}
	return m, nil
}

// SetPixelAspect sets display unit height over width, 2 for typical terminal cells
func (m *Mapper) SetPixelAspect(aspect float64) error {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		return fmt.Errorf("%w: pixel aspect %g", ErrInvalidViewport, aspect)
	}
	m.pixelAspect = aspect
	m.recompute()
	return nil
}

// SetMinFieldWidth floors subsequent zoom-in
func (m *Mapper) SetMinFieldWidth(meters float64) {
	m.minFieldWidth = meters
	if m.fieldWidth < meters {
		m.fieldWidth = meters
		m.recompute()
	}
}

// Resize updates viewport dimensions
func (m *Mapper) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	m.width = width
	m.height = height
	m.recompute()
	return nil
}

// SetFieldWidth sets the horizontal field of view, floored at the minimum
func (m *Mapper) SetFieldWidth(meters float64) error {
	if !(meters > 0) || math.IsInf(meters, 0) {
		return fmt.Errorf("%w: field width %g", ErrInvalidViewport, meters)
	}
	m.fieldWidth = math.Max(meters, m.minFieldWidth)
	m.recompute()
	return nil
}

// Zoom multiplies the field width by factor, <1 zooms in
func (m *Mapper) Zoom(factor float64) error {
	return m.SetFieldWidth(m.fieldWidth * factor)
}

func (m *Mapper) recompute() {
	m.halfWidth = float64(m.width) / 2
	m.halfHeight = float64(m.height) / 2
	m.halfWidthMeters = m.fieldWidth / 2
	screenRatio := float64(m.height) * m.pixelAspect / float64(m.width)
	m.halfHeightMeters = screenRatio * m.halfWidthMeters
}

func (m *Mapper) Width() int             { return m.width }
func (m *Mapper) Height() int            { return m.height }
func (m *Mapper) FieldWidth() float64    { return m.fieldWidth }
func (m *Mapper) FieldHeight() float64   { return 2 * m.halfHeightMeters }
func (m *Mapper) PixelAspect() float64   { return m.pixelAspect }
func (m *Mapper) MinFieldWidth() float64 { return m.minFieldWidth }

// ScaleX converts a horizontal position in meters to display units
func (m *Mapper) ScaleX(x float64) float64 {
	return m.halfWidth + (x/m.halfWidthMeters)*m.halfWidth
}

// ScaleY converts a vertical position in meters to display units, +Y points down the screen
func (m *Mapper) ScaleY(y float64) float64 {
	return m.halfHeight + (y/m.halfHeightMeters)*m.halfHeight
}

// LengthX converts a length in meters to horizontal display units, dropping translation
func (m *Mapper) LengthX(w float64) float64 {
	return m.ScaleX(w) - m.ScaleX(0)
}

// InverseScaleX converts a horizontal display position back to meters
func (m *Mapper) InverseScaleX(px float64) float64 {
	return (px - m.halfWidth) / m.halfWidth * m.halfWidthMeters
}

// InverseScaleY converts a vertical display position back to meters
func (m *Mapper) InverseScaleY(py float64) float64 {
	return (py - m.halfHeight) / m.halfHeight * m.halfHeightMeters
}

// Visible reports whether a display position falls inside the viewport
func (m *Mapper) Visible(px, py float64) bool {
	return px >= 0 && py >= 0 && px < float64(m.width) && py < float64(m.height)
}
