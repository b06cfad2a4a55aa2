// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/govbap/audio"
	"github.com/ik5/govbap/internal/memio"
	"github.com/ik5/govbap/internal/pcm"
)

// aiffReader is the part of aiff.Decoder a source reads from.
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     goaudio.IntBuffer
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if n := cap(s.intBuf.Data); n > 0 {
		return n
	}
	return 4096
}

// ReadSamples converts big-endian signed PCM to float32. AIFF 8-bit samples
// are signed, unlike WAV.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(&s.intBuf)
	if n == 0 {
		s.done = true
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("aiff: %w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = pcm.IntToFloat32(v, s.bitDepth)
	}
	if errors.Is(err, io.EOF) {
		s.done = true
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("aiff: %w", err)
	}
	return n, nil
}

// Decoder decodes uncompressed AIFF files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio/aiff needs to seek between chunks.
	rs, err := memio.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
		intBuf:     goaudio.IntBuffer{Format: format},
	}, nil
}

// Register adds the AIFF decoder to registry under "aiff" and "aif".
func Register(registry *audio.Registry) {
	registry.Register("aiff", Decoder{})
	registry.Register("aif", Decoder{})
}
