package render

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/orbiter/parameter"
)

func runApp(t *testing.T, app *App) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
		return nil
	}
}

func post(t *testing.T, screen tcell.Screen, events ...tcell.Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, screen.PostEvent(ev))
	}
}

func key(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestAppHandlesInputAndQuits(t *testing.T) {
	defer goleak.VerifyNone(t)

	screen := newScreen(t, 100, 50)
	sim := newSimulation(t, 100, 50, parameter.TerminalCellAspect)
	app := NewApp(screen, sim, parameter.DefaultFPS, nil, nil)

	post(t, screen,
		key('>'), key('>'),
		key('p'),
		key('g'),
		key('+'),
		key('q'),
	)
	require.NoError(t, runApp(t, app))

	assert.Equal(t, parameter.DefaultTimeScaleIndex+2, sim.Clock.ScaleIndex())
	assert.False(t, sim.PathsVisible())
	assert.True(t, sim.PhantomEnabled())
	assert.InDelta(t, parameter.DisplayWidthMeters*parameter.ZoomInFactor, sim.Mapper.FieldWidth(), 1)
}

func TestAppResizeAndMouse(t *testing.T) {
	defer goleak.VerifyNone(t)

	screen := newScreen(t, 100, 50)
	sim := newSimulation(t, 100, 50, parameter.TerminalCellAspect)
	app := NewApp(screen, sim, parameter.DefaultFPS, nil, nil)

	post(t, screen,
		tcell.NewEventResize(120, 40),
		tcell.NewEventMouse(30, 10, tcell.WheelDown, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	)
	require.NoError(t, runApp(t, app))

	assert.Equal(t, 120, sim.Mapper.Width())
	assert.Equal(t, 40, sim.Mapper.Height())
	assert.InDelta(t, parameter.DisplayWidthMeters*parameter.ZoomOutFactor, sim.Mapper.FieldWidth(), 1)
	for _, p := range sim.Paths {
		assert.Equal(t, 1, p.Len(), "resize resets trails")
	}
	assert.Less(t, sim.Phantom().Position.X, 0.0, "cell 30 of 120 is left of center")
}

func TestAppPauseFreezesSimulation(t *testing.T) {
	defer goleak.VerifyNone(t)

	screen := newScreen(t, 100, 50)
	sim := newSimulation(t, 100, 50, parameter.TerminalCellAspect)
	app := NewApp(screen, sim, 200, nil, nil)

	quit, err := app.handleEvent(key(' '))
	require.NoError(t, err)
	require.False(t, quit)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))

	assert.True(t, app.clock.IsPaused())
	assert.Zero(t, sim.Elapsed())
	assert.Zero(t, sim.Frames())
}

func TestAppRunsFramesUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	screen := newScreen(t, 100, 50)
	sim := newSimulation(t, 100, 50, parameter.TerminalCellAspect)
	app := NewApp(screen, sim, 200, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))

	assert.Greater(t, sim.Frames(), uint64(0))
	assert.Greater(t, sim.Elapsed(), 0.0)
}
