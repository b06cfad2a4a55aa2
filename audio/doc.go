// SPDX-License-Identifier: EPL-2.0

// Package audio turns decoded files into the mono signal a panner consumes.
//
// Everything is a Source, a stream of interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders for concrete formats live under formats/ and are looked up by file
// extension through a Registry:
//
//	registry := audio.NewRegistry()
//	wav.Register(registry)
//	src, err := registry.Open("voice.wav")
//
// Sources chain. NewResampler converts the rate with cubic interpolation,
// NewMonoMixer averages channels and NewLooper restarts a source when it
// ends, so a player can pull blocks forever:
//
//	loop, err := audio.NewLooper(registry.Opener("voice.wav"))
//	mono := audio.NewMonoMixer(audio.NewResampler(loop, 48000))
//
// ReadMono drains a whole source into a []float64 for offline rendering.
//
// ReadSamples returns io.EOF once a source is exhausted; the final call may
// return samples together with io.EOF.
package audio
