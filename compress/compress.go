// Package compress wraps input and output streams in the compression
// codecs the transcoder understands. Compressed input is recognized by
// its magic number; output compression is chosen explicitly.
package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a stream compression. Its zero value is no
// compression.
type Codec int

const (
	None Codec = iota
	Gzip
	Zstd
	LZ4
)

var ErrBadCodec = errors.New("bad compression")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func ParseCodec(v string) (Codec, error) {
	switch strings.ToLower(v) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	}
	return None, fmt.Errorf("%w: %q", ErrBadCodec, v)
}

func Codecs() []Codec {
	return []Codec{None, Gzip, Zstd, LZ4}
}

func (c Codec) String() string {
	d, err := c.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (c Codec) MarshalText() ([]byte, error) {
	switch c {
	case None:
		return []byte("none"), nil
	case Gzip:
		return []byte("gzip"), nil
	case Zstd:
		return []byte("zstd"), nil
	case LZ4:
		return []byte("lz4"), nil
	}
	return nil, fmt.Errorf("<err: %d is not a compression>", int(c))
}

func (c *Codec) UnmarshalText(d []byte) error {
	pc, err := ParseCodec(string(d))
	if err != nil {
		return err
	}
	*c = pc
	return nil
}

// Suffix returns the file extension of c, including the dot.
func (c Codec) Suffix() string {
	switch c {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	}
	return ""
}

// Sniff returns the codec whose magic number starts head.
func Sniff(head []byte) Codec {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	}
	return None
}

// NewReader returns a reader of the decompressed contents of r and the
// codec it detected. Input without a known magic number is passed
// through unchanged.
func NewReader(r io.Reader) (io.ReadCloser, Codec, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}
	c := Sniff(head)
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("gzip: %w", err)
		}
		return zr, c, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), c, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	}
	return io.NopCloser(br), c, nil
}

// NewWriter returns a writer compressing to w with c. The caller must
// Close it to flush the stream; closing does not close w.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrBadCodec, int(c))
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
