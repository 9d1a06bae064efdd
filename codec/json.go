package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

type jsonDecoder struct {
	cfg      *config
	comments bool
}

func (d *jsonDecoder) Decode(buf *object.Buffer) (*object.Object, error) {
	f := format.JSONFormat
	src := buf.Bytes()
	data := src
	if d.comments {
		f = format.JSONCFormat
		// blanks comments and trailing commas, keeping every offset
		data = jsonc.ToJSON(src)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, decodeErr(f, "", "empty input")
	}
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("invalid json")
		}
		return nil, decodeErr(f, "", "%v", err)
	}
	jd := &jsonDec{
		f:    f,
		cfg:  d.cfg,
		dec:  json.NewDecoder(bytes.NewReader(data)),
		src:  src,
		buf:  buf,
	}
	jd.dec.UseNumber()
	o, err := jd.value(1)
	if err != nil {
		return nil, err
	}
	if _, err := jd.dec.Token(); err != io.EOF {
		return nil, decodeErr(f, jd.at(), "trailing data")
	}
	return o, nil
}

type jsonDec struct {
	f    format.Format
	cfg  *config
	dec  *json.Decoder
	src  []byte
	buf  *object.Buffer
}

func (d *jsonDec) at() string {
	return fmt.Sprintf("offset %d", d.dec.InputOffset())
}

func (d *jsonDec) value(depth int) (*object.Object, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, decodeErr(d.f, d.at(), "%v", err)
	}
	switch v := tok.(type) {
	case nil:
		return object.Unit(), nil
	case bool:
		return object.FromBool(v), nil
	case json.Number:
		return d.number(strings.Clone(string(v)))
	case string:
		return d.str(v), nil
	case json.Delim:
		if depth > d.cfg.maxDepth {
			return nil, tooDeep(d.f, d.at(), d.cfg.maxDepth)
		}
		switch v {
		case '[':
			return d.array(depth)
		case '{':
			return d.object(depth)
		}
	}
	return nil, decodeErr(d.f, d.at(), "unexpected token %v", tok)
}

func (d *jsonDec) array(depth int) (*object.Object, error) {
	res := object.Seq()
	for d.dec.More() {
		e, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		res.Elems = append(res.Elems, e)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, decodeErr(d.f, d.at(), "%v", err)
	}
	return res, nil
}

func (d *jsonDec) object(depth int) (*object.Object, error) {
	res := object.Map()
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, decodeErr(d.f, d.at(), "%v", err)
		}
		k, ok := tok.(string)
		if !ok {
			return nil, decodeErr(d.f, d.at(), "object key %v is not a string", tok)
		}
		key := d.str(k)
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, object.KV(key, v))
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, decodeErr(d.f, d.at(), "%v", err)
	}
	return res, nil
}

// str borrows s from the source buffer when it was written without
// escapes, which is when the decoded text equals the bytes between the
// quotes just consumed. The token stream rewrites its buffer when it
// unescapes, so borrowing stops at the first string that does not match.
func (d *jsonDec) str(s string) *object.Object {
	if d.buf == nil {
		return object.FromString(s)
	}
	end := int(d.dec.InputOffset()) - 1
	start := end - len(s)
	if start < 1 || end >= len(d.src) || d.src[start-1] != '"' || d.src[end] != '"' ||
		string(d.src[start:end]) != s {
		d.buf = nil
		return object.FromString(s)
	}
	return object.StringFrom(object.Borrow(d.buf, start, end))
}

var (
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// bigInt classifies v as i128 or u128, preferring i128. It returns nil if v
// fits neither.
func bigInt(v *big.Int) *object.Object {
	switch {
	case v.Cmp(minI128) >= 0 && v.Cmp(maxI128) <= 0:
		return object.FromI128(v)
	case v.Sign() > 0 && v.Cmp(maxU128) <= 0:
		return object.FromU128(v)
	}
	return nil
}

func (d *jsonDec) number(s string) (*object.Object, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return object.FromI64(i), nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return object.FromU64(u), nil
		}
		if v, ok := new(big.Int).SetString(s, 10); ok {
			if o := bigInt(v); o != nil {
				return o, nil
			}
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, decodeErr(d.f, d.at(), "number %s out of range", s)
	}
	return object.FromF64(f), nil
}

type jsonEncoder struct {
	cfg *config
}

func (e *jsonEncoder) Encode(w io.Writer, o *object.Object) error {
	if err := object.CheckDepth(o, e.cfg.maxDepth); err != nil {
		return fmt.Errorf("%w: json: %w", ErrEncode, err)
	}
	jw := &jsonWriter{cfg: e.cfg}
	if err := jw.value(o, nil); err != nil {
		return err
	}
	jw.b = append(jw.b, '\n')
	_, err := w.Write(jw.b)
	return err
}

type jsonWriter struct {
	cfg   *config
	b     []byte
	depth int
}

func (w *jsonWriter) fail(p *path, msg string, args ...any) error {
	return encodeErr(format.JSONFormat, p, msg, args...)
}

func (w *jsonWriter) put(t object.Type, a ColorAttr, s string) {
	w.b = append(w.b, w.cfg.paint(t, a, s)...)
}

func (w *jsonWriter) newline() {
	if !w.cfg.pretty {
		return
	}
	w.b = append(w.b, '\n')
	for range w.depth {
		w.b = append(w.b, "  "...)
	}
}

func (w *jsonWriter) value(o *object.Object, p *path) error {
	switch o.Type {
	case object.BoolType:
		w.put(o.Type, ValueColor, strconv.FormatBool(o.Bool))
	case object.I8Type, object.I16Type, object.I32Type, object.I64Type:
		w.put(o.Type, ValueColor, strconv.FormatInt(o.Int, 10))
	case object.U8Type, object.U16Type, object.U32Type, object.U64Type:
		w.put(o.Type, ValueColor, strconv.FormatUint(o.Uint, 10))
	case object.I128Type, object.U128Type:
		w.put(o.Type, ValueColor, o.Big.String())
	case object.F32Type, object.F64Type:
		if math.IsNaN(o.Float) || math.IsInf(o.Float, 0) {
			w.put(object.UnitType, ValueColor, "null")
			return nil
		}
		w.put(o.Type, ValueColor, jsonFloat(o.Float, o.Type.Bits()))
	case object.CharType:
		w.str(o.Type, ValueColor, string(o.Char))
	case object.StringType:
		w.str(o.Type, ValueColor, o.Text())
	case object.DualTagKeyType:
		w.str(o.Type, ValueColor, o.Name)
	case object.BytesType:
		b := o.Data.Bytes()
		elems := make([]*object.Object, len(b))
		for i, c := range b {
			elems[i] = object.FromU8(c)
		}
		return w.array(o.Type, elems, p)
	case object.OptionType:
		if o.Value == nil {
			w.put(o.Type, ValueColor, "null")
			return nil
		}
		return w.value(o.Value, p)
	case object.UnitType, object.NamedUnitType:
		w.put(o.Type, ValueColor, "null")
	case object.UnitTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return w.fail(p, "alternative %s has no name", o.Variant)
		}
		w.str(o.Type, ValueColor, name)
	case object.NewtypeType:
		return w.value(o.Value, p)
	case object.NewtypeTagType, object.TupleTagType, object.RecordTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return w.fail(p, "alternative %s has no name", o.Variant)
		}
		return w.object(o.Type, []object.Entry{object.KV(object.FromString(name), o.Value)}, p)
	case object.SeqType, object.TupleType, object.NamedTupleType:
		return w.array(o.Type, o.Elems, p)
	case object.MapType, object.FieldMapType, object.RecordType:
		return w.object(o.Type, entries(o), p)
	default:
		return w.fail(p, "unknown type %s", o.Type)
	}
	return nil
}

func (w *jsonWriter) str(t object.Type, a ColorAttr, s string) {
	q, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		q = []byte(strconv.Quote(s))
	}
	w.put(t, a, string(q))
}

func (w *jsonWriter) array(t object.Type, elems []*object.Object, p *path) error {
	if len(elems) == 0 {
		w.put(t, SepColor, "[]")
		return nil
	}
	w.put(t, SepColor, "[")
	w.depth++
	for i, e := range elems {
		if i > 0 {
			w.put(t, SepColor, ",")
		}
		w.newline()
		if err := w.value(e, p.Index(i)); err != nil {
			return err
		}
	}
	w.depth--
	w.newline()
	w.put(t, SepColor, "]")
	return nil
}

func (w *jsonWriter) object(t object.Type, ents []object.Entry, p *path) error {
	if len(ents) == 0 {
		w.put(t, SepColor, "{}")
		return nil
	}
	w.put(t, SepColor, "{")
	w.depth++
	for i, e := range ents {
		if i > 0 {
			w.put(t, SepColor, ",")
		}
		w.newline()
		k, ok := keyText(e.Key)
		if !ok {
			return w.fail(p, "map key %s is not text", e.Key)
		}
		w.str(e.Key.Type, KeyColor, k)
		w.put(t, SepColor, ":")
		if w.cfg.pretty {
			w.b = append(w.b, ' ')
		}
		if err := w.value(e.Value, p.Field(k)); err != nil {
			return err
		}
	}
	w.depth--
	w.newline()
	w.put(t, SepColor, "}")
	return nil
}

// jsonFloat renders a finite float so that it reads back as a float:
// plain decimals in the usual range, exponents outside it, and always
// a fraction or exponent.
func jsonFloat(f float64, bits int) string {
	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s = strconv.FormatFloat(f, 'e', -1, bits)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, bits)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
