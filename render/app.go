package render

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/orbiter/engine"
	"github.com/lixenwraith/orbiter/parameter"
)

// ErrFramePanic wraps a panic recovered from the frame loop after the terminal is restored
var ErrFramePanic = errors.New("render: frame loop panic")

// App is the interactive terminal host: one goroutine polls input, the frame loop owns all state
type App struct {
	screen   tcell.Screen
	sim      *engine.Simulation
	renderer *TerminalRenderer
	board    *engine.MetricsBoard
	clock    *engine.PausableClock
	interval time.Duration
	logger   *zap.Logger
}

// NewApp wires an initialized screen to a simulation whose mapper matches the screen size
func NewApp(screen tcell.Screen, sim *engine.Simulation, fps int, source engine.TimeProvider, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fps <= 0 {
		fps = parameter.DefaultFPS
	}
	if source == nil {
		source = engine.MonotonicTimeProvider{}
	}
	return &App{
		screen:   screen,
		sim:      sim,
		renderer: NewTerminalRenderer(screen, sim.System.Meta),
		board:    engine.NewMetricsBoard(parameter.MetricsUpdatePeriod),
		clock:    engine.NewPausableClock(source),
		interval: time.Second / time.Duration(fps),
		logger:   logger,
	}
}

// Run drives frames until quit, ctx cancellation or a frame error
// The screen is finalized on return in every case, a panic included
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	g.Go(func() error {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() (err error) {
		defer a.screen.Fini()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("Frame loop panic",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				err = fmt.Errorf("%w: %v", ErrFramePanic, r)
			}
		}()
		return a.loop(gctx, events)
	})

	return g.Wait()
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.HideCursor()
	a.draw()

	last := a.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := a.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				a.logger.Info("Quit requested", zap.Uint64("frames", a.sim.Frames()))
				return nil
			}

		case <-ticker.C:
			now := a.clock.Now()
			delta := now - last
			last = now
			if !a.clock.IsPaused() {
				if err := a.sim.Frame(float64(delta) / float64(time.Millisecond)); err != nil {
					a.logger.Error("Frame failed", zap.Error(err))
					return err
				}
			}
			a.draw()
		}
	}
}

func (a *App) draw() {
	snap := a.board.Refresh(a.sim, a.clock.IsPaused())
	a.renderer.RenderFrame(a.sim, snap)
}

// handleEvent applies one input event, returns quit=true to stop the loop
func (a *App) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		if err := a.sim.Resize(w, h); err != nil {
			return false, fmt.Errorf("resize: %w", err)
		}
		a.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.sim.SetPhantomDisplay(float64(x)+0.5, float64(y)+0.5)
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			return false, a.sim.Zoom(parameter.ZoomInFactor)
		}
		if buttons&tcell.WheelDown != 0 {
			return false, a.sim.Zoom(parameter.ZoomOutFactor)
		}
	}
	return false, nil
}

func (a *App) handleRune(r rune) (bool, error) {
	switch r {
	case 'q':
		return true, nil
	case '+', '=':
		return false, a.sim.Zoom(parameter.ZoomInFactor)
	case '-', '_':
		return false, a.sim.Zoom(parameter.ZoomOutFactor)
	case '>', '.':
		if a.sim.Clock.Faster() {
			a.logger.Debug("Time scale", zap.String("scale", a.sim.Clock.Label()))
		}
	case '<', ',':
		if a.sim.Clock.Slower() {
			a.logger.Debug("Time scale", zap.String("scale", a.sim.Clock.Label()))
		}
	case 'p':
		a.sim.TogglePaths()
	case 'r':
		return false, a.sim.ResetPaths()
	case ' ':
		paused := a.clock.Toggle()
		a.logger.Debug("Pause", zap.Bool("paused", paused))
	case 'g':
		a.sim.TogglePhantom()
	}
	return false, nil
}
