// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const defaultBufferSize = 4096

// ToFloat64 widens src into dst and returns the number of samples copied.
func ToFloat64(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i, v := range src[:n] {
		dst[i] = float64(v)
	}
	return n
}

// ReadMono drains src into a mono float64 signal.
//
// The pipeline is resample (when targetRate is positive and differs from the
// source rate) followed by channel averaging. bufferSize is the read size in
// frames; values <= 0 select 4096. It returns the samples and their rate.
// The source is not closed.
func ReadMono(src Source, targetRate, bufferSize int) ([]float64, int, error) {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	stream := src
	if targetRate > 0 && targetRate != src.SampleRate() {
		stream = NewResampler(src, targetRate)
	}
	mono := NewMonoMixer(stream)
	rate := mono.SampleRate()

	var out []float64
	buf := make([]float32, bufferSize)
	wide := make([]float64, bufferSize)
	stalls := 0
	for {
		n, err := mono.ReadSamples(buf)
		out = append(out, wide[:ToFloat64(wide, buf[:n])]...)

		if errors.Is(err, io.EOF) {
			return out, rate, nil
		}
		if err != nil {
			return nil, rate, fmt.Errorf("audio: reading source: %w", err)
		}
		if n == 0 {
			if stalls++; stalls >= maxStalls {
				return nil, rate, io.ErrNoProgress
			}
			continue
		}
		stalls = 0
	}
}
