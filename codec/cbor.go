package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
	"github.com/x448/float16"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

const (
	cborUint = iota
	cborNegint
	cborBytes
	cborText
	cborArray
	cborMap
	cborTag
	cborSimple
)

const (
	cborFalse = 0xf4
	cborTrue  = 0xf5
	cborNull  = 0xf6
	cborBreak = 0xff
	cborIndef = 31
)

type cborDecoder struct {
	cfg *config
	dm  cbor.DecMode
}

func newCBORDecoder(cfg *config) (*cborDecoder, error) {
	dm, err := cbor.DecOptions{
		MaxNestedLevels:  min(max(cfg.maxDepth, 4), 65535),
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
		IndefLength:      cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		return nil, err
	}
	return &cborDecoder{cfg: cfg, dm: dm}, nil
}

// Decode checks the input is a single well formed item and then walks the
// item headers directly, so that maps keep their order and definite
// length strings borrow from buf.
func (d *cborDecoder) Decode(buf *object.Buffer) (*object.Object, error) {
	data := buf.Bytes()
	if len(data) == 0 {
		return nil, decodeErr(format.CBORFormat, "", "empty input")
	}
	if err := d.dm.Wellformed(data); err != nil {
		return nil, decodeErr(format.CBORFormat, "", "%v", err)
	}
	cd := &cborDec{dm: d.dm, data: data, buf: buf}
	return cd.value()
}

type cborDec struct {
	dm   cbor.DecMode
	data []byte
	buf  *object.Buffer
	off  int
}

func (d *cborDec) fail(at int, msg string, args ...any) error {
	return decodeErr(format.CBORFormat, fmt.Sprintf("offset %d", at), msg, args...)
}

func (d *cborDec) head() (major, ai byte, arg uint64) {
	ib := d.data[d.off]
	d.off++
	major, ai = ib>>5, ib&0x1f
	switch {
	case ai < 24:
		arg = uint64(ai)
	case ai == 24:
		arg = uint64(d.data[d.off])
		d.off++
	case ai == 25:
		arg = uint64(binary.BigEndian.Uint16(d.data[d.off:]))
		d.off += 2
	case ai == 26:
		arg = uint64(binary.BigEndian.Uint32(d.data[d.off:]))
		d.off += 4
	case ai == 27:
		arg = binary.BigEndian.Uint64(d.data[d.off:])
		d.off += 8
	}
	return major, ai, arg
}

func (d *cborDec) atBreak() bool {
	if d.data[d.off] == cborBreak {
		d.off++
		return true
	}
	return false
}

func (d *cborDec) value() (*object.Object, error) {
	start := d.off
	major, ai, arg := d.head()
	switch major {
	case cborUint:
		return object.FromU64(arg), nil
	case cborNegint:
		if arg <= math.MaxInt64 {
			return object.FromI64(-1 - int64(arg)), nil
		}
		v := new(big.Int).SetUint64(arg)
		return object.FromI128(v.Sub(new(big.Int).Neg(v), big.NewInt(1))), nil
	case cborBytes, cborText:
		b, borrowed, err := d.str(major, ai, arg)
		if err != nil {
			return nil, err
		}
		if major == cborText && !utf8.Valid(b) {
			return nil, d.fail(start, "invalid utf-8 in text string")
		}
		data := object.Own(b)
		if borrowed {
			data = object.Borrow(d.buf, d.off-len(b), d.off)
		}
		if major == cborText {
			return object.StringFrom(data), nil
		}
		return object.BytesFrom(data), nil
	case cborArray:
		res := object.Seq()
		for i := uint64(0); ai == cborIndef || i < arg; i++ {
			if ai == cborIndef && d.atBreak() {
				break
			}
			e, err := d.value()
			if err != nil {
				return nil, err
			}
			res.Elems = append(res.Elems, e)
		}
		return res, nil
	case cborMap:
		res := object.Map()
		for i := uint64(0); ai == cborIndef || i < arg; i++ {
			if ai == cborIndef && d.atBreak() {
				break
			}
			k, err := d.value()
			if err != nil {
				return nil, err
			}
			v, err := d.value()
			if err != nil {
				return nil, err
			}
			res.Entries = append(res.Entries, object.KV(k, v))
		}
		return res, nil
	case cborTag:
		if arg == 2 || arg == 3 {
			return d.bignum(start)
		}
		return d.value()
	case cborSimple:
		return d.simple(start, ai, arg)
	}
	return nil, d.fail(start, "unknown major type %d", major)
}

// str returns the contents of a byte or text string. Definite length
// strings are slices of the input and reported as borrowed.
func (d *cborDec) str(major, ai byte, arg uint64) ([]byte, bool, error) {
	if ai != cborIndef {
		b := d.data[d.off : d.off+int(arg)]
		d.off += int(arg)
		return b, true, nil
	}
	var res []byte
	for !d.atBreak() {
		chunkAt := d.off
		m, cai, n := d.head()
		if m != major || cai == cborIndef {
			return nil, false, d.fail(chunkAt, "bad chunk in indefinite length string")
		}
		res = append(res, d.data[d.off:d.off+int(n)]...)
		d.off += int(n)
	}
	if res == nil {
		res = []byte{}
	}
	return res, false, nil
}

func (d *cborDec) bignum(start int) (*object.Object, error) {
	var v big.Int
	rest, err := d.dm.UnmarshalFirst(d.data[start:], &v)
	if err != nil {
		return nil, d.fail(start, "%v", err)
	}
	d.off = len(d.data) - len(rest)
	o := bigInt(&v)
	if o == nil {
		return nil, d.fail(start, "bignum %s exceeds 128 bits", v.String())
	}
	return o, nil
}

func (d *cborDec) simple(start int, ai byte, arg uint64) (*object.Object, error) {
	switch ai {
	case 20:
		return object.FromBool(false), nil
	case 21:
		return object.FromBool(true), nil
	case 22, 23:
		return object.None(), nil
	case 25:
		return object.FromF32(float16.Frombits(uint16(arg)).Float32()), nil
	case 26:
		return object.FromF32(math.Float32frombits(uint32(arg))), nil
	case 27:
		return object.FromF64(math.Float64frombits(arg)), nil
	}
	if ai <= 24 {
		return object.FromU8(uint8(arg)), nil
	}
	return nil, d.fail(start, "unexpected simple value %d", ai)
}

type cborEncoder struct {
	cfg *config
	em  cbor.EncMode
}

func newCBOREncoder(cfg *config) (*cborEncoder, error) {
	em, err := cbor.EncOptions{
		ShortestFloat: cbor.ShortestFloatNone,
		NaNConvert:    cbor.NaNConvertNone,
		InfConvert:    cbor.InfConvertNone,
		BigIntConvert: cbor.BigIntConvertShortest,
	}.EncMode()
	if err != nil {
		return nil, err
	}
	return &cborEncoder{cfg: cfg, em: em}, nil
}

func (e *cborEncoder) Encode(w io.Writer, o *object.Object) error {
	if err := object.CheckDepth(o, e.cfg.maxDepth); err != nil {
		return fmt.Errorf("%w: cbor: %w", ErrEncode, err)
	}
	ce := &cborEnc{em: e.em}
	if err := ce.value(o, nil); err != nil {
		return err
	}
	_, err := w.Write(ce.b)
	return err
}

type cborEnc struct {
	em cbor.EncMode
	b  []byte
}

func (e *cborEnc) head(major byte, n uint64) {
	m := major << 5
	switch {
	case n < 24:
		e.b = append(e.b, m|byte(n))
	case n <= math.MaxUint8:
		e.b = append(e.b, m|24, byte(n))
	case n <= math.MaxUint16:
		e.b = binary.BigEndian.AppendUint16(append(e.b, m|25), uint16(n))
	case n <= math.MaxUint32:
		e.b = binary.BigEndian.AppendUint32(append(e.b, m|26), uint32(n))
	default:
		e.b = binary.BigEndian.AppendUint64(append(e.b, m|27), n)
	}
}

func (e *cborEnc) text(s string) {
	e.head(cborText, uint64(len(s)))
	e.b = append(e.b, s...)
}

func (e *cborEnc) marshal(v any, p *path) error {
	d, err := e.em.Marshal(v)
	if err != nil {
		return encodeErr(format.CBORFormat, p, "%v", err)
	}
	e.b = append(e.b, d...)
	return nil
}

func (e *cborEnc) value(o *object.Object, p *path) error {
	switch o.Type {
	case object.BoolType:
		if o.Bool {
			e.b = append(e.b, cborTrue)
		} else {
			e.b = append(e.b, cborFalse)
		}
	case object.I8Type, object.I16Type, object.I32Type, object.I64Type:
		if o.Int < 0 {
			e.head(cborNegint, uint64(-1-o.Int))
		} else {
			e.head(cborUint, uint64(o.Int))
		}
	case object.U8Type, object.U16Type, object.U32Type, object.U64Type:
		e.head(cborUint, o.Uint)
	case object.I128Type, object.U128Type:
		return e.marshal(o.Big, p)
	case object.F32Type:
		return e.marshal(float32(o.Float), p)
	case object.F64Type:
		return e.marshal(o.Float, p)
	case object.CharType:
		e.text(string(o.Char))
	case object.StringType:
		e.text(o.Text())
	case object.DualTagKeyType:
		e.text(o.Name)
	case object.BytesType:
		b := o.Data.Bytes()
		e.head(cborBytes, uint64(len(b)))
		e.b = append(e.b, b...)
	case object.OptionType:
		if o.Value == nil {
			e.b = append(e.b, cborNull)
			return nil
		}
		return e.value(o.Value, p)
	case object.UnitType, object.NamedUnitType:
		e.b = append(e.b, cborNull)
	case object.UnitTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return encodeErr(format.CBORFormat, p, "alternative %s has no name", o.Variant)
		}
		e.text(name)
	case object.NewtypeType:
		return e.value(o.Value, p)
	case object.NewtypeTagType, object.TupleTagType, object.RecordTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return encodeErr(format.CBORFormat, p, "alternative %s has no name", o.Variant)
		}
		e.head(cborMap, 1)
		e.text(name)
		return e.value(o.Value, p.Field(name))
	case object.SeqType, object.TupleType, object.NamedTupleType:
		e.head(cborArray, uint64(len(o.Elems)))
		for i, el := range o.Elems {
			if err := e.value(el, p.Index(i)); err != nil {
				return err
			}
		}
	case object.MapType, object.FieldMapType, object.RecordType:
		ents := entries(o)
		e.head(cborMap, uint64(len(ents)))
		for i, ent := range ents {
			if err := e.value(ent.Key, p.Index(i)); err != nil {
				return err
			}
			kp := p.Index(i)
			if k, ok := keyText(ent.Key); ok {
				kp = p.Field(k)
			}
			if err := e.value(ent.Value, kp); err != nil {
				return err
			}
		}
	default:
		return encodeErr(format.CBORFormat, p, "unknown type %s", o.Type)
	}
	return nil
}
