package huffman

import "io"

// ChunkSource is what Encode reads from: the ability to read sequential
// chunks and, once, rewind to the start after the first (frequency-counting)
// pass so the payload pass can read the data again.
type ChunkSource interface {
	io.Reader
	Rewind() error
}

// seekSource adapts any io.ReadSeeker (an *os.File, a *bytes.Reader, ...)
// into a ChunkSource.
type seekSource struct {
	rs io.ReadSeeker
}

// NewChunkSource wraps rs so it can be passed to Encode.
func NewChunkSource(rs io.ReadSeeker) ChunkSource {
	return &seekSource{rs: rs}
}

func (s *seekSource) Read(p []byte) (int, error) {
	return s.rs.Read(p)
}

func (s *seekSource) Rewind() error {
	_, err := s.rs.Seek(0, io.SeekStart)
	return err
}
