// SPDX-License-Identifier: EPL-2.0

// Package memio adapts in-memory data for libraries that need to seek.
package memio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

var ErrNegativeOffset = errors.New("memio: negative offset")

// ReadSeeker returns r itself when it can seek, otherwise it reads r to the
// end and returns a reader over the buffered bytes.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("memio: buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}

// Buffer is a growable byte slice implementing io.WriteSeeker and io.Reader.
// Writes past the end zero-fill the gap. Reads start wherever the last Seek
// or Write left the offset.
type Buffer struct {
	data []byte
	off  int64
}

// Bytes returns the buffer contents. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return len(b.data) }

func (b *Buffer) Write(p []byte) (int, error) {
	end := b.off + int64(len(p))
	if end > int64(len(b.data)) {
		if end > int64(cap(b.data)) {
			grown := make([]byte, end, max(end, 2*int64(cap(b.data))))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}
	copy(b.data[b.off:end], p)
	b.off = end
	return len(p), nil
}

func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += int64(n)
	return n, nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("memio: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, ErrNegativeOffset
	}
	b.off = abs
	return abs, nil
}
