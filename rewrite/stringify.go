package rewrite

import (
	"fmt"
	"strconv"

	"github.com/signadot/reserde/object"
)

// Stringify rewrites o in place so that map and field map keys, tag
// variant identifiers and byte strings become text where possible. It walks
// the whole tree once per encoding, in the order given: a byte string that
// is not valid in the first encoding may still convert under a later one.
//
// Keys and identifiers that are scalars are rendered as text
// unconditionally. Byte strings that decode under no encoding, dual tag
// keys and composite keys are left as they are for the encoder to deal
// with. Other scalar values, such as numbers in a sequence, are not
// touched. Stringify never fails.
func Stringify(o *object.Object, encs ...Encoding) {
	for _, enc := range encs {
		stringify(o, enc)
	}
}

func stringify(o *object.Object, enc Encoding) {
	switch o.Type {
	case object.BoolType,
		object.I8Type, object.I16Type, object.I32Type, object.I64Type, object.I128Type,
		object.U8Type, object.U16Type, object.U32Type, object.U64Type, object.U128Type,
		object.F32Type, object.F64Type,
		object.CharType, object.StringType:
	case object.DualTagKeyType:
		// the encoder picks the index or the name
	case object.BytesType:
		stringifyLeaf(o, enc)
	case object.OptionType:
		if o.Value != nil {
			stringify(o.Value, enc)
		}
	case object.UnitType, object.NamedUnitType:
	case object.UnitTagType:
		stringifyLeaf(o.Variant, enc)
	case object.NewtypeType:
		stringify(o.Value, enc)
	case object.NewtypeTagType, object.TupleTagType, object.RecordTagType:
		stringifyLeaf(o.Variant, enc)
		stringify(o.Value, enc)
	case object.SeqType, object.TupleType, object.NamedTupleType:
		for _, e := range o.Elems {
			stringify(e, enc)
		}
	case object.MapType, object.FieldMapType:
		for _, e := range o.Entries {
			stringifyLeaf(e.Key, enc)
			if e.Value != nil {
				stringify(e.Value, enc)
			}
		}
	case object.RecordType:
		for _, f := range o.Fields {
			if f.Value != nil {
				stringify(f.Value, enc)
			}
		}
	default:
		panic(fmt.Sprintf("rewrite: stringify of unknown type %s", o.Type))
	}
}

// stringifyLeaf converts o in place to text if it is a scalar, or a byte
// string valid in enc. An option is unwrapped into. Everything else stays.
func stringifyLeaf(o *object.Object, enc Encoding) {
	if o == nil {
		return
	}
	switch o.Type {
	case object.BoolType,
		object.I8Type, object.I16Type, object.I32Type, object.I64Type, object.I128Type,
		object.U8Type, object.U16Type, object.U32Type, object.U64Type, object.U128Type,
		object.F32Type, object.F64Type,
		object.CharType:
		o.SetText(ScalarText(o))
	case object.StringType:
	case object.BytesType:
		if s, ok := enc.Decode(o.Data.Bytes()); ok {
			o.SetText(s)
		}
	case object.OptionType:
		if o.Value != nil {
			stringifyLeaf(o.Value, enc)
		}
	case object.DualTagKeyType:
		// the encoder picks the index or the name
	case object.UnitType, object.NamedUnitType,
		object.UnitTagType, object.NewtypeType, object.NewtypeTagType,
		object.SeqType, object.TupleType, object.NamedTupleType, object.TupleTagType,
		object.MapType, object.RecordType, object.RecordTagType, object.FieldMapType:
	default:
		panic(fmt.Sprintf("rewrite: stringify of unknown type %s", o.Type))
	}
}

// ScalarText returns the canonical text of a bool, integer, float or char
// leaf: decimal integers, shortest round-tripping floats without exponent,
// "true"/"false" and the character itself. It returns "" for other types.
func ScalarText(o *object.Object) string {
	switch {
	case o.Type == object.BoolType:
		return strconv.FormatBool(o.Bool)
	case o.Type == object.I128Type || o.Type == object.U128Type:
		if o.Big == nil {
			return "0"
		}
		return o.Big.String()
	case o.Type.IsSigned():
		return strconv.FormatInt(o.Int, 10)
	case o.Type.IsUnsigned():
		return strconv.FormatUint(o.Uint, 10)
	case o.Type.IsFloat():
		return object.FormatFloat(o.Float, o.Type.Bits())
	case o.Type == object.CharType:
		return string(o.Char)
	}
	return ""
}
