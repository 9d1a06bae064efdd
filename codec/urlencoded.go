package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
	"github.com/signadot/reserde/rewrite"
)

type urlDecoder struct {
	cfg *config
}

// Decode reads application/x-www-form-urlencoded pairs into a map in input
// order, keeping duplicate keys. Parts without escapes borrow from buf;
// unescaped parts that are not valid UTF-8 become byte strings.
func (d *urlDecoder) Decode(buf *object.Buffer) (*object.Object, error) {
	data := buf.Bytes()
	res := object.Map()
	off := 0
	for off <= len(data) {
		end := bytes.IndexByte(data[off:], '&')
		if end < 0 {
			end = len(data)
		} else {
			end += off
		}
		if end > off {
			piece := data[off:end]
			k, v := off, end
			if eq := bytes.IndexByte(piece, '='); eq >= 0 {
				v = off + eq
			}
			key, err := urlPart(buf, data, k, v)
			if err != nil {
				return nil, err
			}
			var val *object.Object
			if v == end {
				val = object.FromString("")
			} else if val, err = urlPart(buf, data, v+1, end); err != nil {
				return nil, err
			}
			res.Entries = append(res.Entries, object.KV(key, val))
		}
		off = end + 1
	}
	return res, nil
}

func urlPart(buf *object.Buffer, data []byte, off, end int) (*object.Object, error) {
	raw := data[off:end]
	if bytes.IndexByte(raw, '%') < 0 && bytes.IndexByte(raw, '+') < 0 {
		d := object.Borrow(buf, off, end)
		if utf8.Valid(raw) {
			return object.StringFrom(d), nil
		}
		return object.BytesFrom(d), nil
	}
	s, err := url.QueryUnescape(string(raw))
	if err != nil {
		return nil, decodeErr(format.URLEncodedFormat, fmt.Sprintf("offset %d", off), "%v", err)
	}
	if utf8.ValidString(s) {
		return object.FromString(s), nil
	}
	return object.FromBytes([]byte(s)), nil
}

type urlEncoder struct {
	cfg *config
}

// Encode writes a map, field map or record, or a sequence of key/value
// pairs. Values must be scalars; empty options are left out.
func (e *urlEncoder) Encode(w io.Writer, o *object.Object) error {
	if err := object.CheckDepth(o, e.cfg.maxDepth); err != nil {
		return fmt.Errorf("%w: urlencoded: %w", ErrEncode, err)
	}
	pairs, err := urlPairs(unwrap(o))
	if err != nil {
		return err
	}
	var b strings.Builder
	for i, pr := range pairs {
		if pr.Value.Type == object.OptionType && pr.Value.Value == nil {
			continue
		}
		p := (*path)(nil).Index(i)
		k, ok := urlText(pr.Key)
		if !ok {
			return encodeErr(format.URLEncodedFormat, p, "key %s is not a scalar", pr.Key)
		}
		p = (*path)(nil).Field(k)
		v, ok := urlText(pr.Value)
		if !ok {
			return encodeErr(format.URLEncodedFormat, p, "value %s is not a scalar", pr.Value)
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func urlPairs(o *object.Object) ([]object.Entry, error) {
	if isMapLike(o.Type) {
		return entries(o), nil
	}
	switch o.Type {
	case object.SeqType, object.TupleType, object.NamedTupleType:
		res := make([]object.Entry, 0, len(o.Elems))
		for i, el := range o.Elems {
			el = unwrap(el)
			switch el.Type {
			case object.SeqType, object.TupleType, object.NamedTupleType:
				if len(el.Elems) == 2 {
					res = append(res, object.KV(el.Elems[0], el.Elems[1]))
					continue
				}
			}
			return nil, encodeErr(format.URLEncodedFormat, (*path)(nil).Index(i), "element %s is not a key/value pair", el)
		}
		return res, nil
	case object.UnitType, object.NamedUnitType:
		return nil, nil
	}
	return nil, encodeErr(format.URLEncodedFormat, nil, "top level %s is not a map or a sequence of pairs", o.Type)
}

// urlText renders a scalar key or value. Byte strings are written base64
// encoded.
func urlText(o *object.Object) (string, bool) {
	o = unwrap(o)
	switch o.Type {
	case object.StringType:
		return o.Text(), true
	case object.BytesType:
		return base64.StdEncoding.EncodeToString(o.Data.Bytes()), true
	case object.UnitType, object.NamedUnitType:
		return "", true
	case object.DualTagKeyType:
		return o.Name, true
	case object.UnitTagType:
		return tagName(o.Variant)
	}
	if o.Type.IsScalar() {
		return rewrite.ScalarText(o), true
	}
	return "", false
}
