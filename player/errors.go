// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	ErrInvalidVolume     = errors.New("player: volume must be a finite value >= 0")
	ErrInvalidBlockSize  = errors.New("player: block size must be positive")
	ErrInvalidSampleRate = errors.New("player: sample rate must be positive")
)
