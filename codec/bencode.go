package codec

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strconv"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
	"github.com/signadot/reserde/rewrite"
)

type bencodeDecoder struct {
	cfg *config
}

// Decode reads one bencoded value. Strings are byte strings borrowed from
// buf, dictionaries become maps with byte string keys in input order.
func (d *bencodeDecoder) Decode(buf *object.Buffer) (*object.Object, error) {
	bd := &bencodeDec{cfg: d.cfg, buf: buf, data: buf.Bytes()}
	if len(bd.data) == 0 {
		return nil, decodeErr(format.BencodeFormat, "", "empty input")
	}
	o, err := bd.value(1)
	if err != nil {
		return nil, err
	}
	if bd.off != len(bd.data) {
		return nil, bd.fail("trailing data")
	}
	return o, nil
}

type bencodeDec struct {
	cfg  *config
	buf  *object.Buffer
	data []byte
	off  int
}

func (d *bencodeDec) fail(msg string, args ...any) error {
	return decodeErr(format.BencodeFormat, fmt.Sprintf("offset %d", d.off), msg, args...)
}

func (d *bencodeDec) peek() (byte, error) {
	if d.off >= len(d.data) {
		return 0, d.fail("unexpected end of input")
	}
	return d.data[d.off], nil
}

func (d *bencodeDec) value(depth int) (*object.Object, error) {
	c, err := d.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case c == 'i':
		return d.integer()
	case '0' <= c && c <= '9':
		return d.bytes()
	case c == 'l', c == 'd':
		if depth > d.cfg.maxDepth {
			return nil, tooDeep(format.BencodeFormat, fmt.Sprintf("offset %d", d.off), d.cfg.maxDepth)
		}
		d.off++
		if c == 'l' {
			return d.list(depth)
		}
		return d.dict(depth)
	}
	return nil, d.fail("unexpected byte %q", c)
}

func (d *bencodeDec) integer() (*object.Object, error) {
	d.off++
	end := bytes.IndexByte(d.data[d.off:], 'e')
	if end < 0 {
		return nil, d.fail("unterminated integer")
	}
	s := string(d.data[d.off : d.off+end])
	if !canonicalInt(s) {
		return nil, d.fail("bad integer %q", s)
	}
	d.off += end + 1
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return object.FromI64(i), nil
	}
	v, _ := new(big.Int).SetString(s, 10)
	if o := bigInt(v); o != nil {
		return o, nil
	}
	return nil, d.fail("integer %s exceeds 128 bits", s)
}

// canonicalInt reports whether s is a decimal integer without leading
// zeros or a negative zero.
func canonicalInt(s string) bool {
	digits := s
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
		if digits == "0" {
			return false
		}
	}
	if digits == "" || (digits[0] == '0' && len(digits) > 1) {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func (d *bencodeDec) bytes() (*object.Object, error) {
	colon := bytes.IndexByte(d.data[d.off:], ':')
	if colon < 0 {
		return nil, d.fail("unterminated string length")
	}
	s := string(d.data[d.off : d.off+colon])
	n, err := strconv.Atoi(s)
	if err != nil || !canonicalInt(s) || n < 0 {
		return nil, d.fail("bad string length %q", s)
	}
	start := d.off + colon + 1
	if n > len(d.data)-start {
		return nil, d.fail("string of length %d runs past end of input", n)
	}
	d.off = start + n
	return object.BytesFrom(object.Borrow(d.buf, start, d.off)), nil
}

func (d *bencodeDec) list(depth int) (*object.Object, error) {
	res := object.Seq()
	for {
		c, err := d.peek()
		if err != nil {
			return nil, err
		}
		if c == 'e' {
			d.off++
			return res, nil
		}
		e, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		res.Elems = append(res.Elems, e)
	}
}

func (d *bencodeDec) dict(depth int) (*object.Object, error) {
	res := object.Map()
	for {
		c, err := d.peek()
		if err != nil {
			return nil, err
		}
		if c == 'e' {
			d.off++
			return res, nil
		}
		if c < '0' || c > '9' {
			return nil, d.fail("dictionary key is not a string")
		}
		k, err := d.bytes()
		if err != nil {
			return nil, err
		}
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, object.KV(k, v))
	}
}

type bencodeEncoder struct {
	cfg *config
}

func (e *bencodeEncoder) Encode(w io.Writer, o *object.Object) error {
	if err := object.CheckDepth(o, e.cfg.maxDepth); err != nil {
		return fmt.Errorf("%w: bencode: %w", ErrEncode, err)
	}
	be := &bencodeEnc{}
	if err := be.value(o, nil); err != nil {
		return err
	}
	_, err := w.Write(be.b)
	return err
}

type bencodeEnc struct {
	b []byte
}

func (e *bencodeEnc) str(s []byte) {
	e.b = strconv.AppendInt(e.b, int64(len(s)), 10)
	e.b = append(e.b, ':')
	e.b = append(e.b, s...)
}

func (e *bencodeEnc) integer(s string) {
	e.b = append(e.b, 'i')
	e.b = append(e.b, s...)
	e.b = append(e.b, 'e')
}

// empty reports values bencode cannot express, which are dropped from
// dictionaries and written as empty strings elsewhere.
func empty(o *object.Object) bool {
	o = unwrap(o)
	switch o.Type {
	case object.OptionType, object.UnitType, object.NamedUnitType:
		return true
	}
	return false
}

func (e *bencodeEnc) value(o *object.Object, p *path) error {
	switch o.Type {
	case object.BoolType:
		if o.Bool {
			e.integer("1")
		} else {
			e.integer("0")
		}
	case object.I8Type, object.I16Type, object.I32Type, object.I64Type,
		object.U8Type, object.U16Type, object.U32Type, object.U64Type,
		object.I128Type, object.U128Type:
		e.integer(rewrite.ScalarText(o))
	case object.F32Type, object.F64Type, object.CharType:
		e.str([]byte(rewrite.ScalarText(o)))
	case object.StringType, object.BytesType:
		e.str(o.Data.Bytes())
	case object.DualTagKeyType:
		e.str([]byte(o.Name))
	case object.OptionType:
		if o.Value == nil {
			e.str(nil)
			return nil
		}
		return e.value(o.Value, p)
	case object.UnitType, object.NamedUnitType:
		e.str(nil)
	case object.UnitTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return encodeErr(format.BencodeFormat, p, "alternative %s has no name", o.Variant)
		}
		e.str([]byte(name))
	case object.NewtypeType:
		return e.value(o.Value, p)
	case object.NewtypeTagType, object.TupleTagType, object.RecordTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return encodeErr(format.BencodeFormat, p, "alternative %s has no name", o.Variant)
		}
		e.b = append(e.b, 'd')
		e.str([]byte(name))
		if err := e.value(o.Value, p.Field(name)); err != nil {
			return err
		}
		e.b = append(e.b, 'e')
	case object.SeqType, object.TupleType, object.NamedTupleType:
		e.b = append(e.b, 'l')
		for i, el := range o.Elems {
			if err := e.value(el, p.Index(i)); err != nil {
				return err
			}
		}
		e.b = append(e.b, 'e')
	case object.MapType, object.FieldMapType, object.RecordType:
		return e.dict(entries(o), p)
	default:
		return encodeErr(format.BencodeFormat, p, "unknown type %s", o.Type)
	}
	return nil
}

// dict writes entries with keys sorted as raw byte strings, which
// bencode requires.
func (e *bencodeEnc) dict(ents []object.Entry, p *path) error {
	type pair struct {
		key []byte
		val *object.Object
	}
	pairs := make([]pair, 0, len(ents))
	for _, ent := range ents {
		if empty(ent.Value) {
			continue
		}
		if k := unwrap(ent.Key); k.Type == object.BytesType {
			pairs = append(pairs, pair{k.Data.Bytes(), ent.Value})
			continue
		}
		k, ok := keyText(ent.Key)
		if !ok {
			return encodeErr(format.BencodeFormat, p, "dictionary key %s is not a string", ent.Key)
		}
		pairs = append(pairs, pair{[]byte(k), ent.Value})
	}
	slices.SortStableFunc(pairs, func(a, b pair) int {
		return bytes.Compare(a.key, b.key)
	})
	e.b = append(e.b, 'd')
	for _, pr := range pairs {
		e.str(pr.key)
		if err := e.value(pr.val, p.Field(string(pr.key))); err != nil {
			return err
		}
	}
	e.b = append(e.b, 'e')
	return nil
}
