package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

// bincodeEncoder writes the bincode 1.x default layout: little endian
// fixed width integers, u64 lengths and u32 alternative indexes. It is
// not self-describing, so record field names and tuple lengths are
// dropped and tags must carry an index.
type bincodeEncoder struct {
	cfg *config
}

func (e *bincodeEncoder) Encode(w io.Writer, o *object.Object) error {
	if err := object.CheckDepth(o, e.cfg.maxDepth); err != nil {
		return fmt.Errorf("%w: bincode: %w", ErrEncode, err)
	}
	be := &bincodeEnc{}
	if err := be.value(o, nil); err != nil {
		return err
	}
	_, err := w.Write(be.b)
	return err
}

type bincodeEnc struct {
	b []byte
}

func (e *bincodeEnc) u64(n uint64) {
	e.b = binary.LittleEndian.AppendUint64(e.b, n)
}

func (e *bincodeEnc) variant(o *object.Object, p *path) error {
	i, ok := tagIndex(o.Variant)
	if !ok {
		return encodeErr(format.BincodeFormat, p, "alternative %s has no index", o.Variant)
	}
	e.b = binary.LittleEndian.AppendUint32(e.b, i)
	return nil
}

// int128 appends v as 16 little endian bytes in two's complement.
func (e *bincodeEnc) int128(v *big.Int) {
	x := new(big.Int).Set(v)
	if x.Sign() < 0 {
		x.Add(x, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	var be [16]byte
	x.FillBytes(be[:])
	for i := 15; i >= 0; i-- {
		e.b = append(e.b, be[i])
	}
}

func (e *bincodeEnc) elems(elems []*object.Object, p *path) error {
	for i, el := range elems {
		if err := e.value(el, p.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *bincodeEnc) value(o *object.Object, p *path) error {
	switch o.Type {
	case object.BoolType:
		if o.Bool {
			e.b = append(e.b, 1)
		} else {
			e.b = append(e.b, 0)
		}
	case object.I8Type:
		e.b = append(e.b, byte(int8(o.Int)))
	case object.I16Type:
		e.b = binary.LittleEndian.AppendUint16(e.b, uint16(int16(o.Int)))
	case object.I32Type:
		e.b = binary.LittleEndian.AppendUint32(e.b, uint32(int32(o.Int)))
	case object.I64Type:
		e.u64(uint64(o.Int))
	case object.U8Type:
		e.b = append(e.b, byte(o.Uint))
	case object.U16Type:
		e.b = binary.LittleEndian.AppendUint16(e.b, uint16(o.Uint))
	case object.U32Type:
		e.b = binary.LittleEndian.AppendUint32(e.b, uint32(o.Uint))
	case object.U64Type:
		e.u64(o.Uint)
	case object.I128Type, object.U128Type:
		e.int128(o.Big)
	case object.F32Type:
		e.b = binary.LittleEndian.AppendUint32(e.b, math.Float32bits(float32(o.Float)))
	case object.F64Type:
		e.u64(math.Float64bits(o.Float))
	case object.CharType:
		e.b = append(e.b, string(o.Char)...)
	case object.StringType, object.BytesType:
		b := o.Data.Bytes()
		e.u64(uint64(len(b)))
		e.b = append(e.b, b...)
	case object.DualTagKeyType:
		e.b = binary.LittleEndian.AppendUint32(e.b, o.Index)
	case object.OptionType:
		if o.Value == nil {
			e.b = append(e.b, 0)
			return nil
		}
		e.b = append(e.b, 1)
		return e.value(o.Value, p)
	case object.UnitType, object.NamedUnitType:
	case object.UnitTagType:
		return e.variant(o, p)
	case object.NewtypeType:
		return e.value(o.Value, p)
	case object.NewtypeTagType, object.TupleTagType, object.RecordTagType:
		if err := e.variant(o, p); err != nil {
			return err
		}
		return e.value(o.Value, p)
	case object.SeqType:
		e.u64(uint64(len(o.Elems)))
		return e.elems(o.Elems, p)
	case object.TupleType, object.NamedTupleType:
		return e.elems(o.Elems, p)
	case object.MapType, object.FieldMapType:
		ents := entries(o)
		e.u64(uint64(len(ents)))
		for i, ent := range ents {
			if err := e.value(ent.Key, p.Index(i)); err != nil {
				return err
			}
			if err := e.value(ent.Value, p.Index(i)); err != nil {
				return err
			}
		}
	case object.RecordType:
		for _, f := range o.Fields {
			if f.Value == nil {
				continue
			}
			if err := e.value(f.Value, p.Field(f.Name)); err != nil {
				return err
			}
		}
	default:
		return encodeErr(format.BincodeFormat, p, "unknown type %s", o.Type)
	}
	return nil
}
