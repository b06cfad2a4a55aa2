// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxStalls bounds consecutive empty reads without an error before Looper
// gives up on a source.
const maxStalls = 64

// Looper plays a source endlessly. When the source ends it is closed and
// reopened, so every read fills dst completely.
type Looper struct {
	open       func() (Source, error)
	src        Source
	sampleRate int
	channels   int
	sinceOpen  int
	loops      int
}

// NewLooper opens the first pass of the source.
func NewLooper(open func() (Source, error)) (*Looper, error) {
	src, err := open()
	if err != nil {
		return nil, fmt.Errorf("looper: %w", err)
	}
	return &Looper{
		open:       open,
		src:        src,
		sampleRate: src.SampleRate(),
		channels:   src.Channels(),
	}, nil
}

func (l *Looper) SampleRate() int { return l.sampleRate }
func (l *Looper) Channels() int   { return l.channels }
func (l *Looper) BufSize() int    { return l.src.BufSize() }

// Loops returns how many times the source has been restarted.
func (l *Looper) Loops() int { return l.loops }

func (l *Looper) Close() error {
	if err := l.src.Close(); err != nil {
		return fmt.Errorf("looper: %w", err)
	}
	return nil
}

// ReadSamples fills all of dst, wrapping around the end of the source.
// len(dst) must be a multiple of Channels.
func (l *Looper) ReadSamples(dst []float32) (int, error) {
	if len(dst)%l.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	filled, stalls := 0, 0
	for filled < len(dst) {
		n, err := l.src.ReadSamples(dst[filled:])
		filled += n
		l.sinceOpen += n

		switch {
		case errors.Is(err, io.EOF):
			if l.sinceOpen == 0 {
				return filled, ErrEmptySource
			}
			if err := l.rewind(); err != nil {
				return filled, err
			}
		case err != nil:
			return filled, fmt.Errorf("looper: %w", err)
		case n == 0:
			stalls++
			if stalls >= maxStalls {
				return filled, io.ErrNoProgress
			}
		default:
			stalls = 0
		}
	}
	return filled, nil
}

func (l *Looper) rewind() error {
	if err := l.src.Close(); err != nil {
		return fmt.Errorf("looper: closing finished pass: %w", err)
	}

	src, err := l.open()
	if err != nil {
		return fmt.Errorf("looper: reopening source: %w", err)
	}
	if src.SampleRate() != l.sampleRate || src.Channels() != l.channels {
		_ = src.Close()
		return fmt.Errorf("%w: %d Hz/%d ch, was %d Hz/%d ch",
			ErrFormatChanged, src.SampleRate(), src.Channels(), l.sampleRate, l.channels)
	}

	l.src = src
	l.sinceOpen = 0
	l.loops++
	return nil
}
