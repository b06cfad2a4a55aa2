// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files on top of github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 8, 16, 24 and 32 bits with any channel count
// and sample rate, and yields float32 samples in [-1, 1). Chunks other than
// fmt and data, such as LIST or smpl, are skipped. Inputs that cannot seek
// are buffered in memory first.
//
//	registry := audio.NewRegistry()
//	wav.Register(registry)
//	src, err := registry.Open("voice.wav")
//
// WriteMultichannel16 writes one interleaved frame per panned sample, one
// channel per loudspeaker:
//
//	f, _ := os.Create("out.wav")
//	defer f.Close()
//	err := wav.WriteMultichannel16(f, 48000, 5, interleaved)
//
// Errors are sentinels to be matched with errors.Is: ErrNotWavFile,
// ErrUnsupportedEncoding, ErrUnsupportedBitDepth, ErrInvalidChannels and
// ErrPartialFrame.
package wav
