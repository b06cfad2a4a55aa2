// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/govbap/internal/pcm"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Channel count is preserved. A one-pole low-pass smooths the
// input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// frames[0..3] hold source frames t-1, t, t+1, t+2.
	frames [4][]float32
	valid  [4]bool
	primed bool
	eof    bool

	pos float64 // fractional position between frames[1] and frames[2]

	frame    []float32
	lowpass  []float32
	smoothed bool
	warm     bool
}

const lowpassAlpha = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
		lowpass:  make([]float32, channels),
	}
	r.smoothed = r.step > 1
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// readFrame reads one source frame into r.frame. ok is false once the source
// is exhausted.
func (r *Resampler) readFrame() (ok bool, err error) {
	if r.eof {
		return false, nil
	}
	n, err := r.src.ReadSamples(r.frame)
	if errors.Is(err, io.EOF) {
		r.eof = true
		err = nil
	}
	if err != nil {
		return false, fmt.Errorf("resampler: %w", err)
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	if r.smoothed && !r.warm {
		copy(r.lowpass, r.frame)
		r.warm = true
	}
	if r.smoothed {
		for c, v := range r.frame {
			r.lowpass[c] = lowpassAlpha*v + (1-lowpassAlpha)*r.lowpass[c]
			r.frame[c] = r.lowpass[c]
		}
	}
	return true, nil
}

// advance shifts the window one frame forward.
func (r *Resampler) advance() error {
	head := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	copy(r.valid[:], r.valid[1:])
	r.frames[3] = head

	ok, err := r.readFrame()
	if err != nil {
		return err
	}
	if ok {
		copy(r.frames[3], r.frame)
	}
	r.valid[3] = ok
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame()
	if err != nil || !ok {
		return err
	}
	// t-1 repeats the first frame.
	copy(r.frames[0], r.frame)
	copy(r.frames[1], r.frame)
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if ok {
			copy(r.frames[i], r.frame)
		}
		r.valid[i] = ok
	}
	return nil
}

// ReadSamples produces interleaved samples at the target rate. len(dst) must
// be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst)/r.channels {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.valid[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			y1 := r.frames[1][c]
			y0, y2, y3 := y1, y1, y1
			if r.valid[0] {
				y0 = r.frames[0][c]
			}
			if r.valid[2] {
				y2 = r.frames[2][c]
			}
			if r.valid[3] {
				y3 = r.frames[3][c]
			} else {
				y3 = y2
			}
			out[c] = pcm.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
