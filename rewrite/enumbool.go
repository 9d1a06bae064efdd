package rewrite

import (
	"fmt"

	"github.com/signadot/reserde/object"
)

// EnumBools rewrites o in place, replacing every unit tag whose identifier
// is the string or byte string "true" or "false", in any case, with a bool
// leaf. Formats without a native boolean encode them this way. No other
// node is changed; "truthy" stays a unit tag.
//
// EnumBools should run before Stringify, which may turn identifiers that
// are not text yet into strings but never folds the tags themselves.
func EnumBools(o *object.Object) {
	switch o.Type {
	case object.BoolType,
		object.I8Type, object.I16Type, object.I32Type, object.I64Type, object.I128Type,
		object.U8Type, object.U16Type, object.U32Type, object.U64Type, object.U128Type,
		object.F32Type, object.F64Type,
		object.CharType, object.StringType, object.BytesType,
		object.UnitType, object.NamedUnitType, object.DualTagKeyType:
	case object.OptionType:
		if o.Value != nil {
			EnumBools(o.Value)
		}
	case object.UnitTagType:
		EnumBools(o.Variant)
		if v, ok := boolName(o.Variant); ok {
			o.SetBool(v)
		}
	case object.NewtypeType:
		EnumBools(o.Value)
	case object.NewtypeTagType, object.TupleTagType, object.RecordTagType:
		EnumBools(o.Variant)
		EnumBools(o.Value)
	case object.SeqType, object.TupleType, object.NamedTupleType:
		for _, e := range o.Elems {
			EnumBools(e)
		}
	case object.MapType, object.FieldMapType:
		for _, e := range o.Entries {
			EnumBools(e.Key)
			if e.Value != nil {
				EnumBools(e.Value)
			}
		}
	case object.RecordType:
		for _, f := range o.Fields {
			if f.Value != nil {
				EnumBools(f.Value)
			}
		}
	default:
		panic(fmt.Sprintf("rewrite: enum bools of unknown type %s", o.Type))
	}
}

func boolName(o *object.Object) (value, ok bool) {
	var b []byte
	switch o.Type {
	case object.StringType, object.BytesType:
		b = o.Data.Bytes()
	default:
		return false, false
	}
	switch {
	case asciiEqualFold(b, "true"):
		return true, true
	case asciiEqualFold(b, "false"):
		return false, true
	}
	return false, false
}

// asciiEqualFold compares b to the lower case ASCII word ignoring ASCII
// case only.
func asciiEqualFold(b []byte, word string) bool {
	if len(b) != len(word) {
		return false
	}
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != word[i] {
			return false
		}
	}
	return true
}
