package rewrite

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is a text encoding Stringify tries when converting byte strings.
type Encoding int

const (
	UTF8 Encoding = iota
	Latin1
	Windows1252
)

var ErrBadEncoding = errors.New("bad encoding")

var encodingNames = map[string]Encoding{
	"utf8":        UTF8,
	"utf-8":       UTF8,
	"latin1":      Latin1,
	"iso-8859-1":  Latin1,
	"windows1252": Windows1252,
	"cp1252":      Windows1252,
}

// ParseEncoding parses an encoding name such as "utf8".
func ParseEncoding(v string) (Encoding, error) {
	e, ok := encodingNames[strings.ToLower(v)]
	if ok {
		return e, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadEncoding, v)
}

// Encodings returns every supported encoding.
func Encodings() []Encoding {
	return []Encoding{UTF8, Latin1, Windows1252}
}

func (e Encoding) String() string {
	d, err := e.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (e Encoding) MarshalText() ([]byte, error) {
	switch e {
	case UTF8:
		return []byte("utf8"), nil
	case Latin1:
		return []byte("latin1"), nil
	case Windows1252:
		return []byte("windows1252"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not an encoding>", e)
	}
}

func (e *Encoding) UnmarshalText(d []byte) error {
	pe, err := ParseEncoding(string(d))
	if err != nil {
		return err
	}
	*e = pe
	return nil
}

// Decode returns b as text and true if b is valid in e. Single byte
// encodings fail on bytes they leave undefined.
func (e Encoding) Decode(b []byte) (string, bool) {
	switch e {
	case UTF8:
		if !utf8.Valid(b) {
			return "", false
		}
		return string(b), true
	case Latin1:
		return decodeCharmap(charmap.ISO8859_1, b)
	case Windows1252:
		return decodeCharmap(charmap.Windows1252, b)
	}
	return "", false
}

func decodeCharmap(m *charmap.Charmap, b []byte) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		r := m.DecodeByte(c)
		if r == utf8.RuneError {
			return "", false
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}
