// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces stereo, so sources from this package report two
// channels even for mono files; MonoMixer folds them back.
package mp3
