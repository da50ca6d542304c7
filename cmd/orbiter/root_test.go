package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orbiter/config"
	"github.com/lixenwraith/orbiter/observability"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.ResetForTest)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSimulatePrintsMetricsAndPlots(t *testing.T) {
	out, err := execute(t, "simulate", "--days", "30", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "frames")
	assert.Contains(t, out, "Sun      anchor")
	assert.Contains(t, out, "Earth distance to Sun (Mm)")
	assert.Contains(t, out, "Moon distance to Earth (Mm)")
}

func TestExportWritesSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbits.svg")
	_, err := execute(t, "export", "--days", "10", "--out", path, "--log-level", "error")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(svg, "<svg"), "document starts with the svg element")
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, "<title>Moon</title>")
}

func TestExportToStdout(t *testing.T) {
	out, err := execute(t, "export", "--days", "1", "-o", "-", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "</svg>")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	_, err := execute(t, "simulate", "--capacity", "1000")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestHeadlessFlagsValidated(t *testing.T) {
	_, err := execute(t, "simulate", "--days", "0")
	assert.Error(t, err)

	_, err = execute(t, "export", "--frame-ms", "-5", "-o", "-")
	assert.Error(t, err)
}

func TestConfigFileSelectsSystem(t *testing.T) {
	dir := t.TempDir()
	systemFile := filepath.Join(dir, "binary.json")
	require.NoError(t, os.WriteFile(systemFile, []byte(`{
		"name": "Primary",
		"massInKg": 2e30,
		"radiusInMeters": 7e8,
		"satellites": [
			{"name": "Rock", "massInKg": 6e24, "radiusInMeters": 6.4e6, "orbitRadiusInMeters": 1.5e11}
		]
	}`), 0o644))

	cfgFile := filepath.Join(dir, "orbiter.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("[system]\nfile = \""+filepath.ToSlash(systemFile)+"\"\n[logger]\nlevel = \"error\"\n"), 0o644))

	out, err := execute(t, "--config", cfgFile, "simulate", "--days", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Rock distance to Primary (Mm)")
	assert.NotContains(t, out, "Moon")
}

func TestMissingSystemFile(t *testing.T) {
	_, err := execute(t, "simulate", "--system", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
