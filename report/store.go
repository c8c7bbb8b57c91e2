package report

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/elbow/blobstore"
	"github.com/hupe1980/elbow/codec"
	"github.com/hupe1980/elbow/internal/compression"
	"github.com/hupe1980/elbow/internal/hash"
	"github.com/hupe1980/elbow/internal/resource"
)

// ErrInvalidFormat is returned by Load for blobs without a report header.
var ErrInvalidFormat = errors.New("report: invalid format")

// ErrChecksumMismatch is returned when the stored body does not match its checksum.
var ErrChecksumMismatch = errors.New("report: checksum mismatch")

var magic = []byte("ELBR")

const formatVersion = 1

type options struct {
	codec       codec.Codec
	compression compression.Type
	controller  *resource.Controller
}

// Option configures Save and Load.
type Option func(*options)

// WithCodec sets the codec for Save. If nil, codec.Default is used.
// Load always uses the codec named in the header.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression compresses the report body on Save.
func WithCompression(t compression.Type) Option {
	return func(o *options) {
		o.compression = t
	}
}

// WithResourceController throttles report IO through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func newOptions(optFns []Option) options {
	o := options{codec: codec.Default}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Encode renders v as a report blob.
//
// Layout: "ELBR" | version (1 byte) | codec name length (1 byte) | codec name |
// CRC32C of body (4 bytes, little endian) | body.
func Encode(v any, optFns ...Option) ([]byte, error) {
	o := newOptions(optFns)

	body, err := o.codec.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("report: encode with %s: %w", o.codec.Name(), err)
	}
	body, err = compression.Compress(body, o.compression)
	if err != nil {
		return nil, err
	}

	name := o.codec.Name()
	buf := bytes.NewBuffer(make([]byte, 0, len(magic)+2+len(name)+4+len(body)))
	buf.Write(magic)
	buf.WriteByte(formatVersion)
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	buf.Write(binary.LittleEndian.AppendUint32(nil, hash.CRC32C(body)))
	buf.Write(body)
	return buf.Bytes(), nil
}

// Decode parses a report blob into v.
func Decode(data []byte, v any) error {
	if !bytes.HasPrefix(data, magic) || len(data) < len(magic)+2 {
		return ErrInvalidFormat
	}
	data = data[len(magic):]
	if data[0] != formatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, data[0])
	}
	n := int(data[1])
	data = data[2:]
	if len(data) < n+4 {
		return ErrInvalidFormat
	}

	name := string(data[:n])
	c, ok := codec.ByName(name)
	if !ok {
		return fmt.Errorf("%w: unknown codec %q", ErrInvalidFormat, name)
	}

	sum := binary.LittleEndian.Uint32(data[n:])
	data = data[n+4:]
	if hash.CRC32C(data) != sum {
		return ErrChecksumMismatch
	}

	zr, _, err := compression.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer zr.Close()

	body, err := io.ReadAll(zr)
	if err != nil {
		return err
	}
	return c.Unmarshal(body, v)
}

// Save encodes v and writes it to store under name.
func Save(ctx context.Context, store blobstore.Store, name string, v any, optFns ...Option) error {
	o := newOptions(optFns)

	data, err := Encode(v, optFns...)
	if err != nil {
		return err
	}
	if err := o.controller.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads the report stored under name into v.
func Load(ctx context.Context, store blobstore.Store, name string, v any, optFns ...Option) error {
	o := newOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	var r io.Reader = blob
	if o.controller != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.controller)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return Decode(data, v)
}
