// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"math"

	"github.com/ik5/govbap/speakers"
)

const (
	defaultBlockSize = 1024
	defaultVolume    = 1.0
)

type config struct {
	blockSize  int
	volume     float64
	sampleRate int
	bounds     *speakers.Bounds
}

func defaultConfig() config {
	return config{blockSize: defaultBlockSize, volume: defaultVolume}
}

// Option configures a [Player].
type Option func(*config) error

// WithBlockSize sets how many frames are rendered per gain update.
func WithBlockSize(frames int) Option {
	return func(cfg *config) error {
		if frames <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBlockSize, frames)
		}
		cfg.blockSize = frames
		return nil
	}
}

// WithVolume sets the initial linear volume.
func WithVolume(v float64) Option {
	return func(cfg *config) error {
		if err := checkVolume(v); err != nil {
			return err
		}
		cfg.volume = v
		return nil
	}
}

// WithSampleRate resamples the source to hz. By default the source rate is
// kept.
func WithSampleRate(hz int) Option {
	return func(cfg *config) error {
		if hz <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidSampleRate, hz)
		}
		cfg.sampleRate = hz
		return nil
	}
}

// WithBounds limits SetPosition to an azimuth range.
func WithBounds(b speakers.Bounds) Option {
	return func(cfg *config) error {
		cfg.bounds = &b
		return nil
	}
}

func checkVolume(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidVolume, v)
	}
	return nil
}
