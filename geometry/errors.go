// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewSpeakers   = errors.New("too few loudspeakers")
	ErrLengthMismatch   = errors.New("azimuth and elevation counts differ")
	ErrAngleOutOfRange  = errors.New("loudspeaker angle out of range")
	ErrDuplicateSpeaker = errors.New("duplicate loudspeaker direction")
	ErrColinear         = errors.New("loudspeakers are colinear")
	ErrCoplanar         = errors.New("loudspeakers are coplanar")
	ErrNoRegions        = errors.New("no loudspeaker region encloses the listener")
)

// SetupError reports loudspeaker geometry that cannot be panned into.
// Err is one of the sentinel errors above or a *SingularBasisError.
type SetupError struct {
	Err    error
	Detail string
}

func (e *SetupError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("geometry: invalid loudspeaker setup: %v", e.Err)
	}
	return fmt.Sprintf("geometry: invalid loudspeaker setup: %v: %s", e.Err, e.Detail)
}

func (e *SetupError) Unwrap() error { return e.Err }

func setupErr(err error, format string, args ...any) *SetupError {
	return &SetupError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// SingularBasisError reports a speaker basis that cannot be inverted.
type SingularBasisError struct {
	Speakers []int
	Err      error
}

func (e *SingularBasisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("singular loudspeaker basis %v", e.Speakers)
	}
	return fmt.Sprintf("singular loudspeaker basis %v: %v", e.Speakers, e.Err)
}

func (e *SingularBasisError) Unwrap() error { return e.Err }
