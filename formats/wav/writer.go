// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeChunk is the number of frames handed to the encoder at a time.
const writeChunk = 8192

// WriteWAV16 writes samples as a mono 16-bit PCM WAV.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	return WriteMultichannel16(w, sampleRate, 1, samples)
}

// WriteMultichannel16 writes interleaved 16-bit samples as a PCM WAV with the
// given channel count. Sizes in the header are patched once all data is
// written, so w must be able to seek back.
func WriteMultichannel16(w io.WriteSeeker, sampleRate, channels int, interleaved []int16) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}
	if len(interleaved)%channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(interleaved), channels)
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, 0, min(len(interleaved), writeChunk*channels)),
	}

	// The first Write emits the header, so it runs even with no samples.
	for start := 0; start == 0 || start < len(interleaved); start += writeChunk * channels {
		end := min(start+writeChunk*channels, len(interleaved))
		buf.Data = buf.Data[:0]
		for _, v := range interleaved[start:end] {
			buf.Data = append(buf.Data, int(v))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("wav: writing samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalizing header: %w", err)
	}
	return nil
}
