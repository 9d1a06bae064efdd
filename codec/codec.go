package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

var (
	// ErrDecode wraps every failure to parse input.
	ErrDecode = errors.New("decode error")
	// ErrEncode wraps every failure to represent a tree in an output
	// format.
	ErrEncode = errors.New("encode error")
	// ErrUnsupported is returned for a format without a decoder or encoder.
	ErrUnsupported = errors.New("unsupported")
)

// Decoder parses one value from its input. Leaves of the result may borrow
// from buf; callers detach the tree before releasing buf.
type Decoder interface {
	Decode(buf *object.Buffer) (*object.Object, error)
}

// Encoder writes a detached tree. Encoders accept every object type,
// falling back to the closest representation their format has, and fail
// only for shapes the format cannot hold at all.
type Encoder interface {
	Encode(w io.Writer, o *object.Object) error
}

// NewDecoder returns the decoder for f.
func NewDecoder(f format.Format, opts ...Option) (Decoder, error) {
	cfg := newConfig(opts)
	switch f {
	case format.BencodeFormat:
		return &bencodeDecoder{cfg: cfg}, nil
	case format.CBORFormat:
		return newCBORDecoder(cfg)
	case format.JSONFormat:
		return &jsonDecoder{cfg: cfg}, nil
	case format.JSONCFormat:
		return &jsonDecoder{cfg: cfg, comments: true}, nil
	case format.URLEncodedFormat:
		return &urlDecoder{cfg: cfg}, nil
	case format.XMLFormat:
		return &xmlDecoder{cfg: cfg}, nil
	case format.YAMLFormat:
		return &yamlDecoder{cfg: cfg}, nil
	}
	return nil, fmt.Errorf("%w: no decoder for %s", ErrUnsupported, f)
}

// NewEncoder returns the encoder for f.
func NewEncoder(f format.Format, opts ...Option) (Encoder, error) {
	cfg := newConfig(opts)
	switch f {
	case format.BencodeFormat:
		return &bencodeEncoder{cfg: cfg}, nil
	case format.BincodeFormat:
		return &bincodeEncoder{cfg: cfg}, nil
	case format.CBORFormat:
		return newCBOREncoder(cfg)
	case format.JSONFormat:
		return &jsonEncoder{cfg: cfg}, nil
	case format.URLEncodedFormat:
		return &urlEncoder{cfg: cfg}, nil
	case format.XMLFormat:
		return &xmlEncoder{cfg: cfg}, nil
	case format.YAMLFormat:
		return &yamlEncoder{cfg: cfg}, nil
	}
	return nil, fmt.Errorf("%w: no encoder for %s", ErrUnsupported, f)
}

// Decode decodes data in format f. The result owns all of its data.
func Decode(f format.Format, data []byte, opts ...Option) (*object.Object, error) {
	dec, err := NewDecoder(f, opts...)
	if err != nil {
		return nil, err
	}
	buf := object.NewBuffer(data)
	o, err := dec.Decode(buf)
	if err != nil {
		return nil, err
	}
	return object.Detach(o), nil
}

// Encode encodes o in format f.
func Encode(f format.Format, o *object.Object, opts ...Option) ([]byte, error) {
	enc, err := NewEncoder(f, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}


func decodeErr(f format.Format, at string, msg string, args ...any) error {
	if at == "" {
		return fmt.Errorf("%w: %s: %s", ErrDecode, f, fmt.Sprintf(msg, args...))
	}
	return fmt.Errorf("%w: %s: %s: %s", ErrDecode, f, at, fmt.Sprintf(msg, args...))
}

func encodeErr(f format.Format, p *path, msg string, args ...any) error {
	return fmt.Errorf("%w: %s: at %s: %s", ErrEncode, f, p, fmt.Sprintf(msg, args...))
}

func tooDeep(f format.Format, at string, limit int) error {
	return fmt.Errorf("%w: %s: %s: %w: limit %d", ErrDecode, f, at, object.ErrTooDeep, limit)
}
