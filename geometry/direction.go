// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"fmt"
	"math"
)

const deg2rad = math.Pi / 180

// Direction is a source or loudspeaker direction in degrees.
// Azimuth grows counter-clockwise seen from above; elevation grows upwards.
type Direction struct {
	Azimuth   float64 `json:"azimuth" yaml:"azimuth" toml:"azimuth"`
	Elevation float64 `json:"elevation" yaml:"elevation" toml:"elevation"`
}

// Vector2D returns the planar unit vector (-sin(az), cos(az)), ignoring elevation.
func (d Direction) Vector2D() Vec3 {
	az := d.Azimuth * deg2rad
	return Vec3{-math.Sin(az), math.Cos(az), 0}
}

// Vector3D returns the spherical unit vector
// (cos(el)cos(az), cos(el)sin(az), sin(el)).
func (d Direction) Vector3D() Vec3 {
	az := d.Azimuth * deg2rad
	el := d.Elevation * deg2rad
	return Vec3{
		math.Cos(el) * math.Cos(az),
		math.Cos(el) * math.Sin(az),
		math.Sin(el),
	}
}

// Vector returns the unit vector for d in the given dimension.
func (d Direction) Vector(dims Dimension) Vec3 {
	if dims == Planar {
		return d.Vector2D()
	}
	return d.Vector3D()
}

// IsFinite reports whether both angles are finite numbers.
func (d Direction) IsFinite() bool {
	return !math.IsNaN(d.Azimuth) && !math.IsInf(d.Azimuth, 0) &&
		!math.IsNaN(d.Elevation) && !math.IsInf(d.Elevation, 0)
}

// Wrapped returns d with the azimuth wrapped into (-180, 180].
func (d Direction) Wrapped() Direction {
	d.Azimuth = WrapAzimuth(d.Azimuth)
	return d
}

func (d Direction) String() string {
	return fmt.Sprintf("az=%g el=%g", d.Azimuth, d.Elevation)
}

// WrapAzimuth maps any finite angle in degrees into (-180, 180].
func WrapAzimuth(az float64) float64 {
	az = math.Mod(az, 360)
	switch {
	case az > 180:
		az -= 360
	case az <= -180:
		az += 360
	}
	return az
}

// AngularDistance returns the unsigned difference between two azimuths in
// degrees, taking the shorter way around the circle. The result is in [0, 180].
func AngularDistance(a, b float64) float64 {
	return math.Abs(WrapAzimuth(a - b))
}
