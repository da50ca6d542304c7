package system

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/physics"
)

func TestDefaultMatchesConstants(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)
	require.Equal(t, 3, def.Count())

	assert.Equal(t, "Sun", def.Name)
	assert.InDelta(t, parameter.SunMassKg, def.MassInKg, 1)
	assert.InDelta(t, parameter.SunRadiusMeters*parameter.SunRadiusMagnification, def.DrawnRadius(), 1e-3)

	earth := def.Satellites[0]
	assert.Equal(t, "Earth", earth.Name)
	assert.InDelta(t, parameter.EarthSunDistanceMeters, earth.OrbitDistance(), 1e-3)
	assert.InDelta(t, parameter.EarthRadiusMeters*parameter.EarthRadiusMagnification, earth.DrawnRadius(), 1e-3)

	moon := earth.Satellites[0]
	assert.Equal(t, "Moon", moon.Name)
	assert.InDelta(t, parameter.MoonEarthDistanceMeters*parameter.MoonOrbitRadiusMagnification, moon.OrbitDistance(), 1e-3)
}

func TestBuildDefaultLayout(t *testing.T) {
	sys, err := LoadSystem("")
	require.NoError(t, err)
	require.Equal(t, 3, sys.Len())

	sun, earth, moon := sys.Bodies[0], sys.Bodies[1], sys.Bodies[2]

	assert.True(t, sun.Position.IsZero())
	assert.True(t, sun.Velocity.IsZero())
	assert.Empty(t, sun.Influences)

	assert.InDelta(t, parameter.EarthSunDistanceMeters, earth.Position.X, 1e-3)
	assert.Zero(t, earth.Position.Y)
	assert.Equal(t, []int{0}, earth.Influences)
	assert.InDelta(t, physics.OrbitalVelocity(sun.Mass, earth.Position.X), earth.Velocity.Y, 1e-9)

	assert.InDelta(t, parameter.EarthSunDistanceMeters+parameter.MoonEarthDistanceMeters, moon.Position.X, 1e-3)
	assert.Equal(t, []int{0, 1}, moon.Influences, "star first, parent last")
	assert.Equal(t, 1, sys.Primary(2))

	want := physics.OrbitalVelocity(sun.Mass, moon.Position.X) +
		physics.OrbitalVelocity(earth.Mass, parameter.MoonEarthDistanceMeters)
	assert.InDelta(t, want, moon.Velocity.Y, 1e-6)

	kinds := []physics.BodyKind{sys.Meta[0].Kind, sys.Meta[1].Kind, sys.Meta[2].Kind}
	assert.Equal(t, []physics.BodyKind{physics.KindStar, physics.KindPlanet, physics.KindMoon}, kinds)
}

func TestBuildDefaultsMagnificationToOne(t *testing.T) {
	def, err := Parse([]byte(`{
		"name": "A", "massInKg": 10, "radiusInMeters": 2,
		"satellites": [{"name": "B", "massInKg": 1, "radiusInMeters": 1, "orbitRadiusInMeters": 100}]
	}`))
	require.NoError(t, err)

	sys, err := Build(def)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sys.Bodies[0].Radius)
	assert.Equal(t, 100.0, sys.Bodies[1].Position.X)
}

func TestBuildSiblingsShareAncestors(t *testing.T) {
	def := &Definition{
		Name: "S", MassInKg: 1e30, RadiusInMeters: 1e6,
		Satellites: []Definition{
			{Name: "P1", MassInKg: 1e24, RadiusInMeters: 1e3, OrbitRadiusInMeters: 1e9,
				Satellites: []Definition{{Name: "M1", MassInKg: 1e20, RadiusInMeters: 1, OrbitRadiusInMeters: 1e6}}},
			{Name: "P2", MassInKg: 1e24, RadiusInMeters: 1e3, OrbitRadiusInMeters: 2e9},
		},
	}
	sys, err := Build(def)
	require.NoError(t, err)

	got := make(map[string][]int)
	for i, m := range sys.Meta {
		got[m.Name] = sys.Bodies[i].Influences
	}
	want := map[string][]int{"S": nil, "P1": {0}, "M1": {0, 1}, "P2": {0}}
	assert.Empty(t, cmp.Diff(want, got))
	assert.Equal(t, 2e9, sys.Bodies[sys.Index("P2")].Position.X)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"name":"A","massInKg":1,"radiusInMeters":1,"spin":3}`,
		"empty name":    `{"name":"","massInKg":1,"radiusInMeters":1}`,
		"zero mass":     `{"name":"A","massInKg":0,"radiusInMeters":1}`,
		"negative size": `{"name":"A","massInKg":1,"radiusInMeters":-1}`,
		"bad color":     `{"name":"A","color":"yellow","massInKg":1,"radiusInMeters":1}`,
		"no orbit":      `{"name":"A","massInKg":1,"radiusInMeters":1,"satellites":[{"name":"B","massInKg":1,"radiusInMeters":1}]}`,
		"duplicate":     `{"name":"A","massInKg":1,"radiusInMeters":1,"satellites":[{"name":"B","massInKg":1,"radiusInMeters":1,"orbitRadiusInMeters":5},{"name":"B","massInKg":1,"radiusInMeters":1,"orbitRadiusInMeters":9}]}`,
		"syntax":        `{"name":`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestValidateNamesNestedPath(t *testing.T) {
	_, err := Parse([]byte(`{"name":"Sun","massInKg":1,"radiusInMeters":1,
		"satellites":[{"name":"Earth","massInKg":1,"radiusInMeters":1,"orbitRadiusInMeters":1,
			"satellites":[{"name":"Moon","massInKg":-1,"radiusInMeters":1,"orbitRadiusInMeters":1}]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sun.Earth.Moon")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.json")
	doc := `{"name":"A","color":"#ff0000","massInKg":2e30,"radiusInMeters":7e8,
		"satellites":[{"name":"B","color":"#00ff00","massInKg":1e30,"radiusInMeters":7e8,"orbitRadiusInMeters":5e10}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	sys, err := LoadSystem(path)
	require.NoError(t, err)
	assert.Equal(t, 2, sys.Len())
	assert.Equal(t, "#00ff00", sys.Meta[1].Color)
	assert.False(t, math.IsNaN(sys.Bodies[1].Velocity.Y))

	_, err = LoadSystem(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "open system file"))
}
