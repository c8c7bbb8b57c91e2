package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None stores data as is.
	None Type = iota
	// Gzip is widely supported by upstream tooling.
	Gzip
	// ZSTD gives the best ratio for large matrices.
	ZSTD
	// LZ4 is the fastest to decode.
	LZ4
)

// ErrUnknownType is returned for an unrecognised Type or name.
var ErrUnknownType = errors.New("unknown compression type")

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZSTD = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case ZSTD:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Extension returns the conventional file suffix, "" for None.
func (t Type) Extension() string {
	switch t {
	case Gzip:
		return ".gz"
	case ZSTD:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Parse maps a name such as "zstd" to a Type.
func Parse(name string) (Type, error) {
	switch name {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return ZSTD, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// FromName infers a Type from a blob name's extension.
func FromName(name string) Type {
	switch path.Ext(name) {
	case ".gz":
		return Gzip
	case ".zst", ".zstd":
		return ZSTD
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Detect inspects the leading bytes of a stream.
func Detect(header []byte) Type {
	switch {
	case bytes.HasPrefix(header, magicZSTD):
		return ZSTD
	case bytes.HasPrefix(header, magicLZ4):
		return LZ4
	case bytes.HasPrefix(header, magicGzip):
		return Gzip
	default:
		return None
	}
}

var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	if err := dec.Reset(nil); err == nil {
		zstdDecoderPool.Put(dec)
	}
}

// NewReader returns a decompressing reader for r and the detected Type.
// The returned reader must be closed; closing does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Type, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(magicZSTD))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}

	t := Detect(header)
	switch t {
	case ZSTD:
		dec, err := getZstdDecoder(br)
		if err != nil {
			return nil, t, err
		}
		return &zstdReadCloser{dec: dec}, t, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), t, nil
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, t, err
		}
		return zr, t, nil
	default:
		return io.NopCloser(br), t, nil
	}
}

type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdReadCloser) Close() error {
	if z.dec != nil {
		putZstdDecoder(z.dec)
		z.dec = nil
	}
	return nil
}

// NewWriter returns a compressing writer for w. Close flushes the codec
// but does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case ZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Compress encodes data in one call.
func Compress(data []byte, t Type) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, t)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
