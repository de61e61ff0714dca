package tle

import "math"

// Earth parameters shared by the derived-quantity helpers. Values match the
// WGS-84 set the upstream analysis tools use.
const (
	EarthRadiusKm           = 6371.0    // mean radius
	EarthEquatorialRadiusKm = 6378.137  // WGS-84 equatorial radius
	MuEarthKm3S2            = 398600.4418
	GeoAltitudeKm           = 35786.0
)

const (
	minutesPerDay = 1440.0
	secondsPerDay = 86400.0
)

// PeriodMinutes returns the orbital period implied by the mean motion, or 0
// when the mean motion is not positive.
func (e ElementSet) PeriodMinutes() float64 {
	if e.Line2.MeanMotion <= 0 {
		return 0
	}
	return minutesPerDay / e.Line2.MeanMotion
}

// SemiMajorAxisKm derives the semi-major axis from the mean motion via
// Kepler's third law. Returns 0 when the mean motion is not positive.
func (e ElementSet) SemiMajorAxisKm() float64 {
	if e.Line2.MeanMotion <= 0 {
		return 0
	}
	n := e.Line2.MeanMotion * 2 * math.Pi / secondsPerDay // rad/s
	return math.Cbrt(MuEarthKm3S2 / (n * n))
}

// ApogeeAltitudeKm returns the apogee height above the equatorial radius.
func (e ElementSet) ApogeeAltitudeKm() float64 {
	a := e.SemiMajorAxisKm()
	if a == 0 {
		return 0
	}
	return a*(1+e.Line2.Eccentricity) - EarthEquatorialRadiusKm
}

// PerigeeAltitudeKm returns the perigee height above the equatorial radius.
func (e ElementSet) PerigeeAltitudeKm() float64 {
	a := e.SemiMajorAxisKm()
	if a == 0 {
		return 0
	}
	return a*(1-e.Line2.Eccentricity) - EarthEquatorialRadiusKm
}
