// SPDX-License-Identifier: EPL-2.0

package vbap

import (
	"errors"
	"fmt"
	"sync/atomic"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ik5/govbap/geometry"
)

// Gains holds one gain per loudspeaker channel, zero outside the active region.
type Gains []float64

// Power returns the sum of squared gains.
func (g Gains) Power() float64 {
	return vecmath.DotProduct(g, g)
}

// Engine pans a mono signal onto a loudspeaker array.
//
// SetDirection, Direction, Gains and GainsFor may be called from any
// goroutine. RenderPlanar must only be called from one goroutine at a time,
// normally the audio callback.
type Engine struct {
	setup   *geometry.Setup
	locator *Locator
	volNorm float64

	direction atomic.Pointer[geometry.Direction]

	// owned by the RenderPlanar caller
	cached *geometry.Direction
	gains  Gains
}

// New builds the loudspeaker geometry and returns an engine panning onto it.
// Geometry problems are reported as *SetupError.
func New(azimuths, elevations []float64, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("vbap: %w", err)
		}
	}

	setup, err := geometry.New(azimuths, elevations)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		setup:   setup,
		locator: NewLocator(setup),
		volNorm: cfg.volNorm,
		gains:   make(Gains, setup.Len()),
	}
	if err := e.SetDirection(cfg.direction.Azimuth, cfg.direction.Elevation); err != nil {
		return nil, err
	}
	return e, nil
}

// SetDirection validates and publishes a new source direction. The azimuth is
// wrapped into (-180, 180]. The next render picks it up.
func (e *Engine) SetDirection(azimuth, elevation float64) error {
	d, err := e.locator.Validate(geometry.Direction{Azimuth: azimuth, Elevation: elevation})
	if err != nil {
		return err
	}
	e.direction.Store(&d)
	return nil
}

// Direction returns the current source direction.
func (e *Engine) Direction() geometry.Direction {
	return *e.direction.Load()
}

// Gains returns a fresh gain vector for the current direction.
func (e *Engine) Gains() (Gains, error) {
	return e.GainsFor(e.Direction())
}

// GainsFor returns the gain vector for d. A direction outside the array's
// coverage yields all-zero gains and no error.
func (e *Engine) GainsFor(d geometry.Direction) (Gains, error) {
	g := make(Gains, e.setup.Len())
	if err := e.fill(g, d); err != nil {
		return nil, err
	}
	return g, nil
}

// fill writes the normalized gains for d into g, which must have one entry per
// channel.
func (e *Engine) fill(g Gains, d geometry.Direction) error {
	clear(g)

	ar, err := e.locator.Locate(d)
	if errors.Is(err, ErrOutOfCoverage) {
		return nil
	}
	if err != nil {
		return err
	}

	normalizeRegion(&ar, e.volNorm)
	for k := range ar.Size {
		g[ar.Speakers[k]] = ar.Gains[k]
	}
	return nil
}

// Render scales the first frameCount samples of mono by the current gains and
// returns them as one row per frame and one column per loudspeaker.
func (e *Engine) Render(mono []float64, frameCount int) ([][]float64, error) {
	if frameCount < 0 || frameCount > len(mono) {
		return nil, fmt.Errorf("%w: %d frames requested, %d samples given", ErrBufferTooShort, frameCount, len(mono))
	}

	g, err := e.Gains()
	if err != nil {
		return nil, err
	}

	channels := len(g)
	backing := make([]float64, frameCount*channels)
	out := make([][]float64, frameCount)
	for f := range out {
		row := backing[f*channels : (f+1)*channels : (f+1)*channels]
		for ch, gain := range g {
			row[ch] = mono[f] * gain
		}
		out[f] = row
	}
	return out, nil
}

// RenderPlanar writes mono scaled by each channel's gain into dst, one slice
// per loudspeaker, and returns the number of frames written. Gains are
// recomputed only when the published direction changed since the last call.
// It does not allocate.
func (e *Engine) RenderPlanar(dst [][]float64, mono []float64) (int, error) {
	if len(dst) != len(e.gains) {
		return 0, fmt.Errorf("%w: %d channel buffers, want %d", ErrChannelMismatch, len(dst), len(e.gains))
	}
	n := len(mono)
	for _, ch := range dst {
		if len(ch) < n {
			return 0, ErrBufferTooShort
		}
	}

	if d := e.direction.Load(); d != e.cached {
		if err := e.fill(e.gains, *d); err != nil {
			return 0, err
		}
		e.cached = d
	}

	for ch, g := range e.gains {
		if g == 0 {
			clear(dst[ch][:n])
			continue
		}
		vecmath.ScaleBlock(dst[ch][:n], mono, g)
	}
	return n, nil
}

// Channels returns the number of output channels, one per loudspeaker.
func (e *Engine) Channels() int { return e.setup.Len() }

// Setup returns the loudspeaker geometry.
func (e *Engine) Setup() *geometry.Setup { return e.setup }

// VolumeNorm returns the sum of squared gains the engine normalizes to.
func (e *Engine) VolumeNorm() float64 { return e.volNorm }
