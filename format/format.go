package format

import (
	"errors"
	"fmt"
	"strings"
)

type Format int

const (
	BencodeFormat Format = iota
	BincodeFormat
	CBORFormat
	JSONFormat
	JSONCFormat
	URLEncodedFormat
	XMLFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

var formatNames = map[string]Format{
	"bencode":    BencodeFormat,
	"torrent":    BencodeFormat,
	"bincode":    BincodeFormat,
	"cbor":       CBORFormat,
	"c":          CBORFormat,
	"json":       JSONFormat,
	"j":          JSONFormat,
	"jsonc":      JSONCFormat,
	"urlencoded": URLEncodedFormat,
	"form":       URLEncodedFormat,
	"xml":        XMLFormat,
	"x":          XMLFormat,
	"yaml":       YAMLFormat,
	"yml":        YAMLFormat,
	"y":          YAMLFormat,
}

func ParseFormat(v string) (Format, error) {
	f, ok := formatNames[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case BencodeFormat:
		return []byte("bencode"), nil
	case BincodeFormat:
		return []byte("bincode"), nil
	case CBORFormat:
		return []byte("cbor"), nil
	case JSONFormat:
		return []byte("json"), nil
	case JSONCFormat:
		return []byte("jsonc"), nil
	case URLEncodedFormat:
		return []byte("urlencoded"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// CanDecode reports whether f is self-describing and has a decoder.
func (f Format) CanDecode() bool {
	switch f {
	case BincodeFormat:
		return false
	}
	return f >= BencodeFormat && f <= YAMLFormat
}

// CanEncode reports whether f has an encoder.
func (f Format) CanEncode() bool {
	switch f {
	case JSONCFormat:
		return false
	}
	return f >= BencodeFormat && f <= YAMLFormat
}

// IsBinary reports whether f produces bytes rather than text.
func (f Format) IsBinary() bool {
	switch f {
	case BencodeFormat, BincodeFormat, CBORFormat:
		return true
	}
	return false
}

// SupportsPretty reports whether f has a pretty printed form.
func (f Format) SupportsPretty() bool {
	return f == JSONFormat || f == XMLFormat || f == YAMLFormat
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case BencodeFormat:
		return ".torrent"
	case BincodeFormat:
		return ".bin"
	case CBORFormat:
		return ".cbor"
	case JSONFormat:
		return ".json"
	case JSONCFormat:
		return ".jsonc"
	case URLEncodedFormat:
		return ".form"
	case XMLFormat:
		return ".xml"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// FromSuffix returns the format whose file extension matches the
// extension of path.
func FromSuffix(path string) (Format, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return 0, false
	}
	ext := strings.ToLower(path[i:])
	if ext == ".yml" {
		return YAMLFormat, true
	}
	for _, f := range AllFormats() {
		if f.Suffix() == ext {
			return f, true
		}
	}
	return 0, false
}

// AllFormats returns all supported formats in name order.
func AllFormats() []Format {
	return []Format{BencodeFormat, BincodeFormat, CBORFormat, JSONFormat, JSONCFormat, URLEncodedFormat, XMLFormat, YAMLFormat}
}

// InputFormats returns the formats that can be decoded.
func InputFormats() []Format {
	var res []Format
	for _, f := range AllFormats() {
		if f.CanDecode() {
			res = append(res, f)
		}
	}
	return res
}

// OutputFormats returns the formats that can be encoded.
func OutputFormats() []Format {
	var res []Format
	for _, f := range AllFormats() {
		if f.CanEncode() {
			res = append(res, f)
		}
	}
	return res
}
