// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF audio with github.com/go-audio/aiff.
//
// Samples of 8, 16, 24 and 32 bits are scaled to float32 in [-1, 1). The
// decoder seeks between chunks, so non-seekable inputs are read into memory
// before decoding.
//
//	registry := audio.NewRegistry()
//	aiff.Register(registry)
//	src, err := registry.Open("bell.aif")
package aiff
