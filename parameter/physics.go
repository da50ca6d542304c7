package parameter

// GravitationalConstant in SI units (m³ kg⁻¹ s⁻²)
const GravitationalConstant = 6.67408e-11

// Sun
const (
	SunMassKg              = 1988500e24
	SunRadiusMeters        = 695700e3
	SunRadiusMagnification = 15
)

// Earth
// The magnified radius is also the clamp distance of Earth's pull on the moon
// and must stay inside the moon's closest approach (about 3.3e8 m)
const (
	EarthMassKg              = 5.972e24
	EarthRadiusMeters        = 6371e3
	EarthRadiusMagnification = 30
	EarthSunDistanceMeters   = 149.6e9
)

// Moon
// Orbit magnification above about 3.9 puts the moon outside Earth's Hill sphere (1.5e9 m)
const (
	MoonMassKg                   = 0.07346e24
	MoonRadiusMeters             = 1738.1e3
	MoonRadiusMagnification      = 30
	MoonEarthDistanceMeters      = 0.3844e9
	MoonOrbitRadiusMagnification = 1
)
