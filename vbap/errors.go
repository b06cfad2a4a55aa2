// SPDX-License-Identifier: EPL-2.0

package vbap

import (
	"errors"
	"fmt"

	"github.com/ik5/govbap/geometry"
)

var (
	// ErrOutOfCoverage means no region of the array bounds the direction.
	// The engine renders silence for such directions.
	ErrOutOfCoverage = errors.New("direction outside loudspeaker coverage")

	// ErrBufferTooShort means an output buffer cannot hold the rendered frames.
	ErrBufferTooShort = errors.New("output buffer too short")

	// ErrChannelMismatch means the number of output buffers differs from the
	// number of loudspeakers.
	ErrChannelMismatch = errors.New("output channel count mismatch")

	// ErrInvalidVolumeNorm means the output power constant is negative or not finite.
	ErrInvalidVolumeNorm = errors.New("volume normalization must be finite and >= 0")
)

// SetupError is returned when the loudspeaker geometry is unusable.
type SetupError = geometry.SetupError

// SingularBasisError is returned when a speaker basis cannot be inverted.
type SingularBasisError = geometry.SingularBasisError

// InvalidDirectionError reports a direction the setup cannot pan to, such as a
// non-zero elevation on a planar array.
type InvalidDirectionError struct {
	Direction geometry.Direction
	Reason    string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("vbap: invalid direction (%s): %s", e.Direction, e.Reason)
}
