// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/govbap/audio"
)

// mockOggVorbisReader follows oggvorbis.Reader: Read returns values, trimmed
// to whole frames, and io.EOF once nothing is left.
type mockOggVorbisReader struct {
	channels int
	samples  []float32
	err      error
}

func (m *mockOggVorbisReader) SampleRate() int { return 48000 }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	p = p[:len(p)-len(p)%m.channels]
	n := copy(p, m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("OggS but not really an ogg page"),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	all := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3, 0.4, -0.4, 0.5, -0.5}
	tests := []struct {
		name string
		size int
	}{
		{"large buffer", 64},
		{"one frame", 2},
		{"odd buffer trims to frames", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{dec: &mockOggVorbisReader{channels: 2, samples: slices.Clone(all)}, channels: 2}
			dst := make([]float32, tt.size)
			var got []float32
			for {
				n, err := src.ReadSamples(dst)
				if n%2 != 0 {
					t.Fatalf("ReadSamples() = %d, not whole frames", n)
				}
				got = append(got, dst[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}
			if !slices.Equal(got, all) {
				t.Errorf("got %v, want %v", got, all)
			}
		})
	}
}

func TestSource_ShortBuffer(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 6, samples: make([]float32, 12)}, channels: 6}
	if n, err := src.ReadSamples(make([]float32, 5)); n != 0 || err != nil {
		t.Errorf("ReadSamples(5) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	errPage := errors.New("bad page checksum")
	src := &source{dec: &mockOggVorbisReader{channels: 1, err: errPage}, channels: 1}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, errPage) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errPage)
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	registry := audio.NewRegistry()
	Register(registry)
	if got := registry.Formats(); !slices.Equal(got, []string{"oga", "ogg"}) {
		t.Errorf("Formats() = %v", got)
	}
}
