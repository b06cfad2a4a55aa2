// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests. Sources
// satisfy audio.Source without importing it.
package audiotest

import (
	"io"
	"math"
)

// Wave returns the sample for a frame index and channel.
type Wave func(frame, channel int) float32

// Source generates a fixed number of frames from a Wave.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Wave

	// MaxRead caps the samples returned per ReadSamples call when positive.
	MaxRead int
	// Err, when set, is returned instead of io.EOF at the end of the stream.
	Err error
	// Closed counts Close calls.
	Closed int
}

// NewSource returns a source of frames frames produced by wave.
func NewSource(sampleRate, channels, frames int, wave Wave) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

// Silence generates zeros.
func Silence(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// Constant generates value on every channel.
func Constant(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// Sine generates a sine of frequency Hz on every channel.
func Sine(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// Ramp generates the frame index plus channel/10, so tests can tell frames
// and channels apart.
func Ramp(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, ch int) float32 {
		return float32(frame) + float32(ch)/10
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.Closed++
	return nil
}

// Reset rewinds the source to its first frame.
func (s *Source) Reset() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, s.end()
	}

	if s.MaxRead > 0 && len(dst) > s.MaxRead {
		dst = dst[:s.MaxRead]
	}
	count := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range count {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += count

	if s.pos >= s.frames {
		return count * s.channels, s.end()
	}
	return count * s.channels, nil
}

func (s *Source) end() error {
	if s.Err != nil {
		return s.Err
	}
	return io.EOF
}
