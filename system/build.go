package system

import (
	"fmt"

	"github.com/lixenwraith/orbiter/physics"
)

// Build lays the tree out on the +X axis and initializes circular orbit velocities
// Each satellite is pulled by every ancestor, star first, its parent last
func Build(def *Definition) (*physics.System, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	b := builder{
		sys:        physics.NewSystem(def.Count()),
		integrator: physics.NewIntegrator(),
	}
	if err := b.add(def, 0, nil); err != nil {
		return nil, err
	}
	return b.sys, nil
}

type builder struct {
	sys        *physics.System
	integrator *physics.Integrator
}

func (b *builder) add(def *Definition, depth int, ancestors []int) error {
	x := 0.0
	if len(ancestors) > 0 {
		parent := b.sys.Bodies[ancestors[len(ancestors)-1]]
		x = parent.Position.X + def.OrbitDistance()
	}

	body := physics.NewBody(x, 0, def.DrawnRadius(), def.MassInKg)
	body.Influences = append([]int(nil), ancestors...)
	idx, err := b.sys.AddBody(body, physics.Meta{
		Name:  def.Name,
		Color: def.Color,
		Kind:  kindAt(depth),
	})
	if err != nil {
		return fmt.Errorf("build %q: %w", def.Name, err)
	}
	if err := b.integrator.InitializeCircularOrbit(b.sys, idx); err != nil {
		return fmt.Errorf("build %q: %w", def.Name, err)
	}

	chain := append(ancestors[:len(ancestors):len(ancestors)], idx)
	for i := range def.Satellites {
		if err := b.add(&def.Satellites[i], depth+1, chain); err != nil {
			return err
		}
	}
	return nil
}

func kindAt(depth int) physics.BodyKind {
	switch depth {
	case 0:
		return physics.KindStar
	case 1:
		return physics.KindPlanet
	default:
		return physics.KindMoon
	}
}

// LoadSystem builds the system from path, or the embedded default when path is empty
func LoadSystem(path string) (*physics.System, error) {
	var (
		def *Definition
		err error
	)
	if path == "" {
		def, err = Default()
	} else {
		def, err = Load(path)
	}
	if err != nil {
		return nil, err
	}
	return Build(def)
}
