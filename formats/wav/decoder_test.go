// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/govbap/audio"
	"github.com/ik5/govbap/internal/memio"
)

// encode writes data with go-audio's encoder at the given depth and format tag.
func encode(t *testing.T, sampleRate, bitDepth, channels, format int, data []int) []byte {
	t.Helper()

	var buf memio.Buffer
	enc := wav.NewEncoder(&buf, sampleRate, bitDepth, channels, format)
	err := enc.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:   data,
	})
	if err != nil {
		t.Fatalf("encoder Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("encoder Close() error = %v", err)
	}
	return buf.Bytes()
}

func readAll(t *testing.T, src audio.Source, chunk int) []float32 {
	t.Helper()

	buf := make([]float32, chunk)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		data     []int
		want     []float32
	}{
		{"8-bit unsigned", 8, []int{128, 192, 0, 64}, []float32{0, 0.5, -1, -0.5}},
		{"16-bit", 16, []int{0, 16384, -32768, -8192}, []float32{0, 0.5, -1, -0.25}},
		{"24-bit", 24, []int{0, 4194304, -8388608, 2097152}, []float32{0, 0.5, -1, 0.25}},
		{"32-bit", 32, []int{0, 1 << 30, -1 << 31, -(1 << 29)}, []float32{0, 0.5, -1, -0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := encode(t, 22050, tt.bitDepth, 2, pcmFormat, tt.data)
			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != 22050 || src.Channels() != 2 {
				t.Errorf("format = %d Hz / %d ch, want 22050 / 2", src.SampleRate(), src.Channels())
			}

			got := readAll(t, src, 2)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	data := encode(t, 8000, 16, 1, pcmFormat, []int{100, -100, 200})
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := readAll(t, src, 16); len(got) != 3 {
		t.Errorf("got %d samples, want 3", len(got))
	}
}

func TestDecoder_EmptyData(t *testing.T) {
	t.Parallel()

	var buf memio.Buffer
	if err := WriteWAV16(&buf, 8000, nil); err != nil {
		t.Fatal(err)
	}
	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	n, err := src.ReadSamples(make([]float32, 4))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.EOF) {
		t.Errorf("second ReadSamples() error = %v, want io.EOF", err)
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, ErrNotWavFile},
		{"not RIFF", []byte("OggS this is not a wave file at all......"), ErrNotWavFile},
		{"float samples", encode(t, 8000, 32, 1, 3, []int{0, 1}), ErrUnsupportedEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
			if src != nil {
				t.Error("Decode() returned a source on error")
			}
		})
	}
}

type failingReader struct{ err error }

func (f failingReader) PCMBuffer(*goaudio.IntBuffer) (int, error) { return 0, f.err }

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	errTruncated := errors.New("truncated chunk")
	src := &source{dec: failingReader{err: errTruncated}, channels: 1, bitDepth: 16}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, errTruncated) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errTruncated)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	registry := audio.NewRegistry()
	Register(registry)
	for _, ext := range []string{"wav", ".WAV", "wave"} {
		if _, ok := registry.Get(ext); !ok {
			t.Errorf("Get(%q) not registered", ext)
		}
	}
}
