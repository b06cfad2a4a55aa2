// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ik5/govbap/audio"
	"github.com/ik5/govbap/internal/pcm"
	"github.com/ik5/govbap/speakers"
	"github.com/ik5/govbap/vbap"
)

const bytesPerSample = 2

// Sink plays interleaved little-endian PCM16 pulled from a reader.
type Sink interface {
	Play(r io.Reader) error
	Close() error
}

// Player loops a source forever and pans it with an engine. It is an
// io.Reader of interleaved little-endian PCM16 with one channel per
// loudspeaker, meant to be pulled by an audio device.
//
// Read must be called from one goroutine. SetVolume and SetPosition may be
// called from any goroutine and take effect at the next block.
type Player struct {
	eng    *vbap.Engine
	looper *audio.Looper
	mono   audio.Source
	bounds *speakers.Bounds

	sampleRate int
	volume     atomic.Uint64

	block   []float32
	wide    []float64
	planes  [][]float64
	out     []byte
	pending []byte

	mu     sync.Mutex
	closed bool
}

// New opens the source through a looper and prepares the render buffers.
// open is called again every time the source ends.
func New(eng *vbap.Engine, open func() (audio.Source, error), opts ...Option) (*Player, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	looper, err := audio.NewLooper(open)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	var stream audio.Source = looper
	if cfg.sampleRate > 0 && cfg.sampleRate != looper.SampleRate() {
		stream = audio.NewResampler(looper, cfg.sampleRate)
	}

	channels := eng.Channels()
	p := &Player{
		eng:        eng,
		looper:     looper,
		mono:       audio.NewMonoMixer(stream),
		bounds:     cfg.bounds,
		sampleRate: stream.SampleRate(),
		block:      make([]float32, cfg.blockSize),
		wide:       make([]float64, cfg.blockSize),
		planes:     make([][]float64, channels),
		out:        make([]byte, cfg.blockSize*channels*bytesPerSample),
	}
	for ch := range p.planes {
		p.planes[ch] = make([]float64, cfg.blockSize)
	}
	p.volume.Store(math.Float64bits(cfg.volume))
	return p, nil
}

// SampleRate is the output rate in Hz.
func (p *Player) SampleRate() int { return p.sampleRate }

// Channels is the output channel count, one per loudspeaker.
func (p *Player) Channels() int { return len(p.planes) }

// Loops reports how many times the source has restarted.
func (p *Player) Loops() int { return p.looper.Loops() }

func (p *Player) Volume() float64 { return math.Float64frombits(p.volume.Load()) }

// SetVolume sets the linear gain applied before panning.
func (p *Player) SetVolume(v float64) error {
	if err := checkVolume(v); err != nil {
		return err
	}
	p.volume.Store(math.Float64bits(v))
	return nil
}

// SetPosition moves the source. With bounds configured the azimuth is clamped
// into them first.
func (p *Player) SetPosition(azimuth, elevation float64) error {
	if p.bounds != nil && !math.IsNaN(azimuth) {
		azimuth = p.bounds.Clamp(azimuth)
	}
	return p.eng.SetDirection(azimuth, elevation)
}

// Read fills b with rendered PCM, rendering new blocks as needed.
func (p *Player) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, io.EOF
	}

	written := 0
	for written < len(b) {
		if len(p.pending) == 0 {
			if err := p.render(); err != nil {
				return written, err
			}
		}
		n := copy(b[written:], p.pending)
		p.pending = p.pending[n:]
		written += n
	}
	return written, nil
}

// render produces one block into p.pending.
func (p *Player) render() error {
	filled := 0
	for filled < len(p.block) {
		n, err := p.mono.ReadSamples(p.block[filled:])
		filled += n
		if err != nil {
			return fmt.Errorf("player: %w", err)
		}
	}

	mono := p.wide[:audio.ToFloat64(p.wide, p.block)]
	vecmath.ScaleBlockInPlace(mono, p.Volume())

	frames, err := p.eng.RenderPlanar(p.planes, mono)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}

	channels := len(p.planes)
	for ch, plane := range p.planes {
		for f, v := range plane[:frames] {
			off := (f*channels + ch) * bytesPerSample
			binary.LittleEndian.PutUint16(p.out[off:], uint16(pcm.Float64ToInt16(v)))
		}
	}
	p.pending = p.out[:frames*channels*bytesPerSample]
	return nil
}

// Close releases the source. Further reads return io.EOF.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.mono.Close()
}

// Run plays p on sink until ctx is done, then closes the sink and the player.
func Run(ctx context.Context, p *Player, sink Sink) error {
	if err := sink.Play(p); err != nil {
		return errors.Join(fmt.Errorf("player: starting sink: %w", err), sink.Close(), p.Close())
	}
	<-ctx.Done()
	return errors.Join(sink.Close(), p.Close())
}
