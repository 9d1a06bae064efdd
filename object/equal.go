package object

import (
	"bytes"
	"math"
)

// Equal reports whether a and b have the same structure and content:
// variant types, names, ordering and leaf values. Whether a leaf borrows or
// owns its data does not matter. Floats compare by bit pattern, so a NaN
// equals itself.
func Equal(a, b *Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type || a.Name != b.Name {
		return false
	}
	switch a.Type {
	case BoolType:
		return a.Bool == b.Bool
	case I8Type, I16Type, I32Type, I64Type:
		return a.Int == b.Int
	case U8Type, U16Type, U32Type, U64Type:
		return a.Uint == b.Uint
	case I128Type, U128Type:
		if a.Big == nil || b.Big == nil {
			return a.Big == b.Big
		}
		return a.Big.Cmp(b.Big) == 0
	case F32Type, F64Type:
		return math.Float64bits(a.Float) == math.Float64bits(b.Float)
	case CharType:
		return a.Char == b.Char
	case StringType, BytesType:
		return bytes.Equal(a.Data.Bytes(), b.Data.Bytes())
	case OptionType, NewtypeType:
		return Equal(a.Value, b.Value)
	case UnitType, NamedUnitType:
		return true
	case UnitTagType:
		return Equal(a.Variant, b.Variant)
	case NewtypeTagType, TupleTagType, RecordTagType:
		return Equal(a.Variant, b.Variant) && Equal(a.Value, b.Value)
	case SeqType, TupleType, NamedTupleType:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case MapType, FieldMapType:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for i := range a.Entries {
			if !Equal(a.Entries[i].Key, b.Entries[i].Key) || !Equal(a.Entries[i].Value, b.Entries[i].Value) {
				return false
			}
		}
		return true
	case RecordType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !Equal(a.Fields[i].Value, b.Fields[i].Value) {
				return false
			}
		}
		return true
	case DualTagKeyType:
		return a.Index == b.Index
	}
	return false
}
