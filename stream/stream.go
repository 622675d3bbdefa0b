// Package stream provides Reader/Seeker abstractions over byte windows,
// plus a fixed-capacity MemoryStream and a thin *os.File wrapper,
// grounded on original_source/include/async/Stream.h,
// ByteStream.h, and FileStream.h.
//
// The original Stream interface mixes read, seek, and write concerns in
// one C++ virtual base; this package splits the read and seek concerns
// into narrow Go interfaces (Reader, Seeker), following the teacher's
// preference for small single-method interfaces over one fat one. It
// defines no writing interface.
package stream

import (
	"errors"
	"io"
	"os"
)

// ErrOutOfRange is returned by Seek when pos exceeds the stream's size.
var ErrOutOfRange = errors.New("stream: seek position out of range")

// Reader is a stream that can be read and peeked without consuming, the
// way Stream::peek() lets a caller inspect the next byte without
// advancing.
type Reader interface {
	io.Reader
	// Available reports how many bytes remain unread.
	Available() int
	// Peek returns the next unread byte without advancing, or -1 if
	// none remains.
	Peek() int
}

// Seeker repositions a stream's read cursor.
type Seeker interface {
	Seek(pos int) error
	Position() int
	Size() int
}

// MemoryStream is a Reader+Seeker over an in-memory byte slice — the Go
// counterpart to ByteStream, which wraps a fixed buffer with no heap
// churn per read.
type MemoryStream struct {
	data []byte
	pos  int
}

// NewMemoryStream constructs a MemoryStream over data. The slice is not
// copied; callers must not mutate it concurrently with reads.
func NewMemoryStream(data []byte) *MemoryStream {
	return &MemoryStream{data: data}
}

func (m *MemoryStream) Available() int { return len(m.data) - m.pos }

func (m *MemoryStream) Peek() int {
	if m.Available() <= 0 {
		return -1
	}
	return int(m.data[m.pos])
}

func (m *MemoryStream) Read(p []byte) (int, error) {
	if m.Available() <= 0 {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func (m *MemoryStream) Seek(pos int) error {
	if pos < 0 || pos > len(m.data) {
		return ErrOutOfRange
	}
	m.pos = pos
	return nil
}

func (m *MemoryStream) Position() int { return m.pos }
func (m *MemoryStream) Size() int     { return len(m.data) }

// FileStream is a Reader+Seeker over an *os.File, the Go counterpart to
// FileStream.h's wrapper over Arduino's SPIFFS File handle — used for
// host-side testing and log spooling per SPEC_FULL.md's collaborator
// list.
type FileStream struct {
	file *os.File
	size int64
	pos  int64
}

// NewFileStream wraps an already-open file. The caller retains
// ownership of Close.
func NewFileStream(f *os.File) (*FileStream, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &FileStream{file: f, size: info.Size()}, nil
}

func (f *FileStream) Available() int {
	return int(f.size - f.pos)
}

func (f *FileStream) Peek() int {
	if f.Available() <= 0 {
		return -1
	}
	var b [1]byte
	n, err := f.file.ReadAt(b[0:1], f.pos)
	if err != nil || n == 0 {
		return -1
	}
	return int(b[0])
}

func (f *FileStream) Read(p []byte) (int, error) {
	n, err := f.file.Read(p)
	f.pos += int64(n)
	return n, err
}

func (f *FileStream) Seek(pos int) error {
	if pos < 0 || int64(pos) > f.size {
		return ErrOutOfRange
	}
	if _, err := f.file.Seek(int64(pos), io.SeekStart); err != nil {
		return err
	}
	f.pos = int64(pos)
	return nil
}

func (f *FileStream) Position() int { return int(f.pos) }
func (f *FileStream) Size() int     { return int(f.size) }
