// SPDX-License-Identifier: EPL-2.0

package vbap

import (
	"fmt"
	"math"

	"github.com/ik5/govbap/geometry"
)

const defaultVolumeNorm = 1.0

type config struct {
	volNorm   float64
	direction geometry.Direction
}

func defaultConfig() config {
	return config{volNorm: defaultVolumeNorm}
}

// Option configures an [Engine].
type Option func(*config) error

// WithVolumeNorm sets the sum of squared gains of every gain vector
// (default 1.0, must be finite and >= 0). Zero mutes the engine.
func WithVolumeNorm(v float64) Option {
	return func(cfg *config) error {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %g", ErrInvalidVolumeNorm, v)
		}

		cfg.volNorm = v

		return nil
	}
}

// WithDirection sets the initial source direction (default az 0, el 0).
func WithDirection(d geometry.Direction) Option {
	return func(cfg *config) error {
		cfg.direction = d
		return nil
	}
}
