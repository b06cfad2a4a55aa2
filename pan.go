// SPDX-License-Identifier: EPL-2.0

package govbap

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/govbap/audio"
	"github.com/ik5/govbap/formats/aiff"
	"github.com/ik5/govbap/formats/mp3"
	"github.com/ik5/govbap/formats/vorbis"
	"github.com/ik5/govbap/formats/wav"
	"github.com/ik5/govbap/internal/pcm"
	"github.com/ik5/govbap/vbap"
)

const (
	defaultBufferSize = 4096
	maxStalls         = 64
)

// NewRegistry returns a registry with every bundled decoder: WAV, AIFF, MP3
// and Ogg Vorbis.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	wav.Register(r)
	aiff.Register(r)
	mp3.Register(r)
	vorbis.Register(r)
	return r
}

// PanSource downmixes src to mono and pans the whole stream with the engine's
// current gains. It returns interleaved 16-bit frames, one sample per
// loudspeaker, at the source's sample rate. bufferSize is the block length in
// frames; values <= 0 select 4096. The source is not closed.
func PanSource(src audio.Source, eng *vbap.Engine, bufferSize int) ([]int16, int, error) {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	channels := eng.Channels()
	mono := audio.NewMonoMixer(src)
	block := make([]float32, bufferSize)
	wide := make([]float64, bufferSize)
	planes := make([][]float64, channels)
	for ch := range planes {
		planes[ch] = make([]float64, bufferSize)
	}

	var out []int16
	stalls := 0
	for {
		n, readErr := mono.ReadSamples(block)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, src.SampleRate(), fmt.Errorf("govbap: reading source: %w", readErr)
		}

		if n > 0 {
			stalls = 0
			frames, err := eng.RenderPlanar(planes, wide[:audio.ToFloat64(wide, block[:n])])
			if err != nil {
				return nil, src.SampleRate(), fmt.Errorf("govbap: %w", err)
			}
			out = interleave(out, planes, frames)
		} else if readErr == nil {
			if stalls++; stalls >= maxStalls {
				return nil, src.SampleRate(), io.ErrNoProgress
			}
		}

		if errors.Is(readErr, io.EOF) {
			return out, src.SampleRate(), nil
		}
	}
}

func interleave(out []int16, planes [][]float64, frames int) []int16 {
	out = append(out, make([]int16, frames*len(planes))...)
	tail := out[len(out)-frames*len(planes):]
	for ch, plane := range planes {
		for f, v := range plane[:frames] {
			tail[f*len(planes)+ch] = pcm.Float64ToInt16(v)
		}
	}
	return out
}

// PanFile decodes in with dec, pans it with PanSource and writes the result
// to out as a PCM16 WAV with one channel per loudspeaker.
func PanFile(in io.Reader, dec audio.Decoder, out io.WriteSeeker, eng *vbap.Engine, bufferSize int) error {
	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("govbap: decoding input: %w", err)
	}
	defer src.Close()

	interleaved, rate, err := PanSource(src, eng, bufferSize)
	if err != nil {
		return err
	}
	return wav.WriteMultichannel16(out, rate, eng.Channels(), interleaved)
}
