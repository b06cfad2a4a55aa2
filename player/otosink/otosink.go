// SPDX-License-Identifier: EPL-2.0

// Package otosink plays a player's PCM on the default audio device through
// github.com/hajimehoshi/oto/v2.
package otosink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/ik5/govbap/player"
)

var (
	ErrInvalidFormat = errors.New("otosink: sample rate and channels must be positive")
	ErrNotReady      = errors.New("otosink: audio device did not become ready")
)

// readyTimeout bounds the wait for the device after the context is created.
const readyTimeout = 5 * time.Second

var _ player.Sink = (*Sink)(nil)

// Sink owns an oto context. oto allows one context per process, so create a
// single Sink and reuse it.
type Sink struct {
	ctx   *oto.Context
	ready chan struct{}

	mu     sync.Mutex
	player oto.Player
}

// New opens the audio device for interleaved signed 16-bit little-endian PCM.
func New(sampleRate, channels int) (*Sink, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, sampleRate, channels)
	}

	ctx, ready, err := oto.NewContext(sampleRate, channels, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("otosink: %w", err)
	}
	return &Sink{ctx: ctx, ready: ready}, nil
}

// Play waits for the device and starts pulling from r in the background. A
// previous stream is stopped first.
func (s *Sink) Play(r io.Reader) error {
	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()

	select {
	case <-s.ready:
	case <-ctx.Done():
		return ErrNotReady
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		if err := s.player.Close(); err != nil {
			return fmt.Errorf("otosink: stopping previous stream: %w", err)
		}
	}
	s.player = s.ctx.NewPlayer(r)
	s.player.Play()
	return nil
}

// Playing reports whether a stream is being pulled.
func (s *Sink) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.player != nil && s.player.IsPlaying()
}

// Close stops the current stream. The device itself stays open.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	if err != nil {
		return fmt.Errorf("otosink: %w", err)
	}
	return nil
}
