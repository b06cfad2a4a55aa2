// SPDX-License-Identifier: EPL-2.0

// Package vbap computes Vector Base Amplitude Panning gains and applies them
// to a mono signal.
//
// An [Engine] is built once from loudspeaker angles. The geometry is fixed
// after that; only the source direction changes:
//
//	eng, err := vbap.New([]float64{30, 0, -30, 110, -110}, nil)
//	if err != nil {
//		return err // *vbap.SetupError
//	}
//
//	_ = eng.SetDirection(15, 0)
//	gains, _ := eng.Gains() // 1/sqrt(2) on the 30 and 0 degree speakers
//
// # Real-time use
//
// SetDirection publishes the direction atomically, so a control goroutine can
// steer the source while the audio goroutine renders:
//
//	out := make([][]float64, eng.Channels())
//	for ch := range out {
//		out[ch] = make([]float64, blockSize)
//	}
//	n, err := eng.RenderPlanar(out, mono)
//
// Gains are recomputed once per block when the direction changed. A
// direction no loudspeaker region bounds renders silence.
//
// # Errors
//
//   - *SetupError: the loudspeaker geometry is unusable, from New.
//   - *InvalidDirectionError: a direction the array cannot express, such as a
//     non-zero elevation on a planar array.
//   - *SingularBasisError: a basis that cannot be inverted, from Solve.
//   - ErrOutOfCoverage: returned by Locator.Locate; the engine maps it to
//     silence.
package vbap
