package system

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidDefinition marks malformed body records
var ErrInvalidDefinition = errors.New("system: invalid definition")

//go:embed default.json
var defaultDefinition []byte

var strictJSON = jsoniter.Config{
	EscapeHTML:             false,
	DisallowUnknownFields:  true,
	UseNumber:              false,
	ValidateJsonRawMessage: true,
}.Froze()

// Definition is one body record; the root is the star at the origin
type Definition struct {
	Name                           string       `json:"name"`
	Color                          string       `json:"color,omitempty"`
	MassInKg                       float64      `json:"massInKg"`
	RadiusInMeters                 float64      `json:"radiusInMeters"`
	RadiusMagnificationFactor      float64      `json:"radiusMagnificationFactor,omitempty"`
	OrbitRadiusInMeters            float64      `json:"orbitRadiusInMeters,omitempty"`
	OrbitRadiusMagnificationFactor float64      `json:"orbitRadiusMagnificationFactor,omitempty"`
	Satellites                     []Definition `json:"satellites,omitempty"`
}

// Default returns the embedded Sun, Earth, Moon system
func Default() (*Definition, error) {
	return Parse(defaultDefinition)
}

// Load reads a definition file
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open system file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates a definition
func Decode(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read system definition: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a definition document
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := strictJSON.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the whole tree; the root needs no orbit radius
func (d *Definition) Validate() error {
	return d.validate(d.Name, true)
}

func (d *Definition) validate(path string, root bool) error {
	if d.Name == "" {
		return fmt.Errorf("%w: %s: empty name", ErrInvalidDefinition, path)
	}
	if !positive(d.MassInKg) {
		return fmt.Errorf("%w: %s: massInKg must be positive, got %g", ErrInvalidDefinition, path, d.MassInKg)
	}
	if !positive(d.RadiusInMeters) {
		return fmt.Errorf("%w: %s: radiusInMeters must be positive, got %g", ErrInvalidDefinition, path, d.RadiusInMeters)
	}
	if d.RadiusMagnificationFactor < 0 || d.OrbitRadiusMagnificationFactor < 0 {
		return fmt.Errorf("%w: %s: magnification factors must not be negative", ErrInvalidDefinition, path)
	}
	if !root && !positive(d.OrbitRadiusInMeters) {
		return fmt.Errorf("%w: %s: orbitRadiusInMeters must be positive, got %g", ErrInvalidDefinition, path, d.OrbitRadiusInMeters)
	}
	if d.Color != "" {
		if _, err := colorful.Hex(d.Color); err != nil {
			return fmt.Errorf("%w: %s: color %q: %v", ErrInvalidDefinition, path, d.Color, err)
		}
	}

	seen := make(map[string]struct{}, len(d.Satellites))
	for i := range d.Satellites {
		s := &d.Satellites[i]
		if _, dup := seen[s.Name]; dup && s.Name != "" {
			return fmt.Errorf("%w: %s: duplicate satellite %q", ErrInvalidDefinition, path, s.Name)
		}
		seen[s.Name] = struct{}{}
		if err := s.validate(path+"."+s.Name, false); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of bodies in the tree
func (d *Definition) Count() int {
	n := 1
	for i := range d.Satellites {
		n += d.Satellites[i].Count()
	}
	return n
}

// DrawnRadius is the radius after magnification, also used for gravity clamping
func (d *Definition) DrawnRadius() float64 {
	return d.RadiusInMeters * factor(d.RadiusMagnificationFactor)
}

// OrbitDistance is the distance from the parent after magnification
func (d *Definition) OrbitDistance() float64 {
	return d.OrbitRadiusInMeters * factor(d.OrbitRadiusMagnificationFactor)
}

// factor treats an omitted magnification as 1
func factor(f float64) float64 {
	if f == 0 {
		return 1
	}
	return f
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
