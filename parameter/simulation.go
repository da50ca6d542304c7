package parameter

import "time"

// Simulated seconds
const (
	Day      = 24 * 60 * 60
	Month    = 30 * Day
	HalfYear = 6 * Month
	Year     = 365 * Day
	Decade   = 10 * Year
)

// TimeScalePreset maps one real second to Factor simulated seconds
type TimeScalePreset struct {
	Label  string
	Factor float64
}

// TimeScalePresets is the ordered set selectable at runtime
var TimeScalePresets = []TimeScalePreset{
	{Label: "1 day/s", Factor: Day},
	{Label: "1 month/s", Factor: Month},
	{Label: "6 months/s", Factor: HalfYear},
	{Label: "1 year/s", Factor: Year},
	{Label: "1 decade/s", Factor: Decade},
}

// DefaultTimeScaleIndex selects one month per second
const DefaultTimeScaleIndex = 1

// Frame budget
const (
	// MinimumFPS bounds the largest frame delta fed to the integrator
	MinimumFPS = 20

	// MaxFrameDeltaMillis clamps long pauses (suspended terminal, slow frame)
	MaxFrameDeltaMillis = 1000.0 / MinimumFPS

	// MaxSubStepSeconds caps a single integration step to one simulated day
	MaxSubStepSeconds = Day

	// DefaultFPS is the terminal frame rate
	DefaultFPS = 60
)

// Field of view
const (
	// DisplayWidthMeters is the initial horizontal field of view
	DisplayWidthMeters = 800e9

	// MinDisplayWidthMeters floors zoom-in
	MinDisplayWidthMeters = 1e9

	// ZoomInFactor and ZoomOutFactor multiply the field width per step
	ZoomInFactor  = 0.9
	ZoomOutFactor = 1.1

	// TerminalCellAspect is cell height over cell width
	TerminalCellAspect = 2.0
)

// Trail
const (
	// PathCapacity must be a power of two
	PathCapacity = 1024

	// SignificantPathDeltaPixels is the display displacement needed to commit a trail point
	SignificantPathDeltaPixels = 4.0

	// SignificantPathDeltaCells is the terminal equivalent, a cell is coarser than a pixel
	SignificantPathDeltaCells = 1.0
)

// MetricsUpdatePeriod throttles metric recomputation
const MetricsUpdatePeriod = 200 * time.Millisecond

// Phantom probe, a pointer-tracked pull that is not a member of the system
const (
	PhantomMassKg       = SunMassKg
	PhantomRadiusMeters = SunRadiusMeters * SunRadiusMagnification
)
