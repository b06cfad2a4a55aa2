// SPDX-License-Identifier: EPL-2.0

// Package player renders a looping sound source through a VBAP engine in
// fixed-size blocks, as an io.Reader an audio device can pull from.
//
// Each block reads mono samples, applies the volume, pans them with the
// engine's current gains and interleaves the loudspeaker channels as
// little-endian PCM16. A direction change made with SetPosition is picked up
// at the next block boundary.
//
//	registry := govbap.NewRegistry()
//	p, err := player.New(eng, registry.Opener("rain.ogg"), player.WithBlockSize(512))
//	sink, err := otosink.New(p.SampleRate(), p.Channels())
//	err = player.Run(ctx, p, sink)
package player
