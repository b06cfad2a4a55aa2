// SPDX-License-Identifier: EPL-2.0

// Package govbap positions a mono sound source on a loudspeaker array with
// Vector Base Amplitude Panning.
//
// The panning itself lives in the vbap package, built on the loudspeaker
// geometry in geometry. This package ties it to audio files: PanSource and
// PanFile decode a file, fold it to mono, apply the engine's gains and write
// one channel per loudspeaker.
//
//	layout, _ := speakers.Preset("5d0")
//	eng, _ := layout.Engine(vbap.WithDirection(geometry.Direction{Azimuth: 15}))
//
//	in, _ := os.Open("voice.wav")
//	out, _ := os.Create("voice-5d0.wav")
//	err := govbap.PanFile(in, wav.Decoder{}, out, eng, 4096)
//
// For live playback with a moving source see the player and control
// packages.
package govbap
