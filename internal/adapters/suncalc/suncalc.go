// Package suncalc computes sunrise and sunset instants with the NOAA
// solar position algorithm.
package suncalc

import (
	"math"
	"time"

	"github.com/arkadyv/bellhop/internal/ports"
)

// Provider implements ports.SunTimeProvider.
type Provider struct{}

var _ ports.SunTimeProvider = Provider{}

func toRad(d float64) float64 { return d * math.Pi / 180 }
func toDeg(r float64) float64 { return r * 180 / math.Pi }

// julianDay converts a calendar date to the Julian day number at 0h UT.
func julianDay(y, m, d int) float64 {
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + float64(d) + b - 1524.5
}

// solarParams returns the solar declination (radians) and the equation
// of time (minutes) for a Julian century T.
func solarParams(T float64) (dec, eqTime float64) {
	L0 := math.Mod(280.46646+T*(36000.76983+T*0.0003032), 360)
	M := 357.52911 + T*(35999.05029-T*0.0001537)
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	Mrad := toRad(M)
	C := (1.914602-T*(0.004817+T*0.000014))*math.Sin(Mrad) +
		(0.019993-0.000101*T)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	sunTrueLong := L0 + C
	omega := 125.04 - 1934.136*T
	sunApparentLong := sunTrueLong - 0.00569 - 0.00478*math.Sin(toRad(omega))
	meanObliq := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	obliqCorr := meanObliq + 0.00256*math.Cos(toRad(omega))
	dec = math.Asin(math.Sin(toRad(obliqCorr)) * math.Sin(toRad(sunApparentLong)))

	y := math.Pow(math.Tan(toRad(obliqCorr)/2), 2)
	L0rad := toRad(L0)
	eqTime = 4 * toDeg(y*math.Sin(2*L0rad)-
		2*e*math.Sin(Mrad)+
		4*e*y*math.Sin(Mrad)*math.Cos(2*L0rad)-
		0.5*y*y*math.Sin(4*L0rad)-
		1.25*e*e*math.Sin(2*Mrad))
	return dec, eqTime
}

// calcTimeUTC returns the event time in minutes after 0h UT, refining the
// estimate once with solar parameters at the event itself. ok is false
// when the sun never crosses the horizon that day. Longitude is positive
// east.
func calcTimeUTC(jd, lat, lng float64, sunrise bool) (minutes float64, ok bool) {
	const zenith = 90.833
	latRad := toRad(lat)

	hourAngle := func(dec float64) (float64, bool) {
		cosHA := (math.Cos(toRad(zenith)) - math.Sin(latRad)*math.Sin(dec)) /
			(math.Cos(latRad) * math.Cos(dec))
		if cosHA < -1 || cosHA > 1 {
			return 0, false
		}
		ha := toDeg(math.Acos(cosHA))
		if !sunrise {
			ha = -ha
		}
		return ha, true
	}

	T0 := (jd - 2451545.0) / 36525.0
	dec0, eqTime0 := solarParams(T0)
	ha0, ok := hourAngle(dec0)
	if !ok {
		return 0, false
	}
	time0 := 720 - 4*(lng+ha0) - eqTime0

	T1 := (jd + time0/1440.0 - 2451545.0) / 36525.0
	dec1, eqTime1 := solarParams(T1)
	ha1, ok := hourAngle(dec1)
	if !ok {
		return 0, false
	}
	return 720 - 4*(lng+ha1) - eqTime1, true
}

// eventOn returns the sunrise or sunset instant for a calendar date.
func eventOn(date time.Time, lat, lng float64, sunrise bool) (time.Time, bool) {
	y, m, d := date.UTC().Date()
	jd := julianDay(y, int(m), d)
	minutes, ok := calcTimeUTC(jd, lat, lng, sunrise)
	if !ok {
		return time.Time{}, false
	}
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(minutes * float64(time.Minute))), true
}

// next scans yesterday through three days ahead and returns the first
// event after now.
func next(now time.Time, lat, lng float64, sunrise bool) (time.Time, bool) {
	for offset := -1; offset <= 3; offset++ {
		t, ok := eventOn(now.AddDate(0, 0, offset), lat, lng, sunrise)
		if ok && t.After(now) {
			return t, true
		}
	}
	return time.Time{}, false
}

// NextSunrise returns the first sunrise after now at the coordinate.
// ok is false under polar day or night.
func (Provider) NextSunrise(now time.Time, lat, lng float64) (time.Time, bool) {
	return next(now, lat, lng, true)
}

// NextSunset returns the first sunset after now at the coordinate.
func (Provider) NextSunset(now time.Time, lat, lng float64) (time.Time, bool) {
	return next(now, lat, lng, false)
}
