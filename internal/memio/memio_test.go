// SPDX-License-Identifier: EPL-2.0

package memio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	seekable := strings.NewReader("abc")
	rs, err := ReadSeeker(seekable)
	if err != nil {
		t.Fatalf("ReadSeeker() error = %v", err)
	}
	if rs != io.ReadSeeker(seekable) {
		t.Error("ReadSeeker() wrapped a reader that can already seek")
	}

	rs, err = ReadSeeker(io.MultiReader(strings.NewReader("hello "), strings.NewReader("world")))
	if err != nil {
		t.Fatalf("ReadSeeker() error = %v", err)
	}
	if _, err := rs.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "world" {
		t.Errorf("read after seek = %q, want %q", rest, "world")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestReadSeeker_Error(t *testing.T) {
	t.Parallel()

	if _, err := ReadSeeker(failingReader{}); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("ReadSeeker() error = %v, want io.ErrClosedPipe", err)
	}
}

func TestBuffer_PatchHeader(t *testing.T) {
	t.Parallel()

	var b Buffer
	_, _ = b.Write([]byte("HEAD----body"))
	if _, err := b.Seek(4, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	_, _ = b.Write([]byte("1234"))
	if _, err := b.Seek(0, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	_, _ = b.Write([]byte("!"))

	if got := string(b.Bytes()); got != "HEAD1234body!" {
		t.Errorf("Bytes() = %q, want %q", got, "HEAD1234body!")
	}
}

func TestBuffer_SeekPastEnd(t *testing.T) {
	t.Parallel()

	var b Buffer
	if _, err := b.Seek(3, io.SeekCurrent); err != nil {
		t.Fatal(err)
	}
	_, _ = b.Write([]byte{7})
	if !bytes.Equal(b.Bytes(), []byte{0, 0, 0, 7}) {
		t.Errorf("Bytes() = %v, want zero-filled gap", b.Bytes())
	}

	if _, err := b.Seek(-10, io.SeekStart); !errors.Is(err, ErrNegativeOffset) {
		t.Errorf("Seek() error = %v, want ErrNegativeOffset", err)
	}
	if _, err := b.Seek(0, 42); err == nil {
		t.Error("Seek() with bad whence succeeded")
	}
}

func TestBuffer_Read(t *testing.T) {
	t.Parallel()

	var b Buffer
	_, _ = b.Write([]byte("pcm"))
	_, _ = b.Seek(0, io.SeekStart)

	got, err := io.ReadAll(&b)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "pcm" || b.Len() != 3 {
		t.Errorf("ReadAll() = %q, Len() = %d", got, b.Len())
	}
}
