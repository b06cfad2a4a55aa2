// SPDX-License-Identifier: EPL-2.0

package vbap

import (
	"math"

	"github.com/ik5/govbap/geometry"
)

const (
	// A direction within this many degrees of a speaker plays on it alone.
	exactHitDeg = 1e-9
	// Gains at or above -nonNegEps count as non-negative.
	nonNegEps = 1e-9
)

var exactHitChord = 2 * math.Sin(exactHitDeg*math.Pi/360)

// ActiveRegion is the set of speakers a direction is panned between, with
// their gains in the order of Speakers. Size is 1 for an exact hit on a
// speaker, 2 for a planar pair and 3 for a spherical triangle.
type ActiveRegion struct {
	Speakers [3]int
	Size     int
	Gains    [3]float64
}

// Locator finds the active region of a direction within a Setup.
// It is safe for concurrent use and does not allocate on success.
type Locator struct {
	setup *geometry.Setup
}

// NewLocator returns a locator over s.
func NewLocator(s *geometry.Setup) *Locator {
	return &Locator{setup: s}
}

// Validate checks that d can be panned on the setup and returns it with the
// azimuth wrapped into (-180, 180].
func (l *Locator) Validate(d geometry.Direction) (geometry.Direction, error) {
	if !d.IsFinite() {
		return d, &InvalidDirectionError{Direction: d, Reason: "angles must be finite"}
	}
	if l.setup.Dims() == geometry.Planar && d.Elevation != 0 {
		return d, &InvalidDirectionError{Direction: d, Reason: "elevation must be 0 on a 2-D setup"}
	}
	if d.Elevation < -90 || d.Elevation > 90 {
		return d, &InvalidDirectionError{Direction: d, Reason: "elevation must be in [-90, 90]"}
	}
	return d.Wrapped(), nil
}

// Locate returns the active region for d with un-normalized gains.
// ErrOutOfCoverage is returned when no region bounds d.
func (l *Locator) Locate(d geometry.Direction) (ActiveRegion, error) {
	d, err := l.Validate(d)
	if err != nil {
		return ActiveRegion{}, err
	}

	target := d.Vector(l.setup.Dims())
	for i := range l.setup.Len() {
		if target.Sub(l.setup.Vector(i)).Len() < exactHitChord {
			return ActiveRegion{Speakers: [3]int{i}, Size: 1, Gains: [3]float64{1}}, nil
		}
	}

	if l.setup.Dims() == geometry.Planar {
		return l.locatePlanar(d, target)
	}
	return l.scan(target, -1)
}

// locatePlanar tries the pair of speakers nearest to d first, then every
// other pair.
func (l *Locator) locatePlanar(d geometry.Direction, target geometry.Vec3) (ActiveRegion, error) {
	first, second := -1, -1
	bestDist, nextDist := math.Inf(1), math.Inf(1)
	for i := range l.setup.Len() {
		dist := geometry.AngularDistance(d.Azimuth, l.setup.Speaker(i).Azimuth)
		switch {
		case dist < bestDist:
			second, nextDist = first, bestDist
			first, bestDist = i, dist
		case dist < nextDist:
			second, nextDist = i, dist
		}
	}

	lo, hi := min(first, second), max(first, second)
	skip := -1
	for i := range l.setup.NumRegions() {
		sp := l.setup.Region(i).Speakers()
		if sp[0] == lo && sp[1] == hi {
			if ar, ok := l.try(i, target); ok {
				return ar, nil
			}
			skip = i
			break
		}
	}
	return l.scan(target, skip)
}

// scan returns the first region in stored order, other than skip, whose gains
// are all non-negative.
func (l *Locator) scan(target geometry.Vec3, skip int) (ActiveRegion, error) {
	for i := range l.setup.NumRegions() {
		if i == skip {
			continue
		}
		if ar, ok := l.try(i, target); ok {
			return ar, nil
		}
	}
	return ActiveRegion{}, ErrOutOfCoverage
}

func (l *Locator) try(i int, target geometry.Vec3) (ActiveRegion, bool) {
	r := l.setup.Region(i)
	ar := ActiveRegion{Size: r.Size(), Gains: r.Gains(target)}
	for k := range ar.Size {
		if ar.Gains[k] < -nonNegEps {
			return ActiveRegion{}, false
		}
		ar.Gains[k] = max(ar.Gains[k], 0)
	}
	copy(ar.Speakers[:], r.Speakers())
	return ar, true
}
