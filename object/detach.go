package object

import (
	"fmt"
	"math/big"
)

// Detach returns a structurally identical copy of o in which every string
// and bytes leaf owns its storage. The result shares nothing with o and no
// longer depends on any Buffer o borrowed from, which may then be
// released.
//
// Detach recurses once per level of o; untrusted trees should pass
// CheckDepth first. A nil o yields nil.
func Detach(o *Object) *Object {
	if o == nil {
		return nil
	}
	res := &Object{Type: o.Type, Name: o.Name}
	switch o.Type {
	case BoolType:
		res.Bool = o.Bool
	case I8Type, I16Type, I32Type, I64Type:
		res.Int = o.Int
	case U8Type, U16Type, U32Type, U64Type:
		res.Uint = o.Uint
	case I128Type, U128Type:
		if o.Big != nil {
			res.Big = new(big.Int).Set(o.Big)
		}
	case F32Type, F64Type:
		res.Float = o.Float
	case CharType:
		res.Char = o.Char
	case StringType, BytesType:
		res.Data = o.Data.Detach()
	case OptionType, NewtypeType:
		res.Value = Detach(o.Value)
	case UnitType, NamedUnitType:
	case UnitTagType:
		res.Variant = Detach(o.Variant)
	case NewtypeTagType, TupleTagType, RecordTagType:
		res.Variant = Detach(o.Variant)
		res.Value = Detach(o.Value)
	case SeqType, TupleType, NamedTupleType:
		res.Elems = detachElems(o.Elems)
	case MapType, FieldMapType:
		res.Entries = detachEntries(o.Entries)
	case RecordType:
		res.Fields = detachFields(o.Fields)
	case DualTagKeyType:
		res.Index = o.Index
	default:
		panic(fmt.Sprintf("object: detach of unknown type %s", o.Type))
	}
	return res
}

func detachElems(elems []*Object) []*Object {
	if elems == nil {
		return nil
	}
	res := make([]*Object, len(elems))
	for i, e := range elems {
		res[i] = Detach(e)
	}
	return res
}

func detachEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	res := make([]Entry, len(entries))
	for i, e := range entries {
		res[i] = Entry{Key: Detach(e.Key), Value: Detach(e.Value)}
	}
	return res
}

func detachFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	res := make([]Field, len(fields))
	for i, f := range fields {
		res[i] = Field{Name: f.Name, Value: Detach(f.Value)}
	}
	return res
}

// IsDetached reports whether no leaf of o borrows from a Buffer.
func IsDetached(o *Object) bool {
	detached := true
	Walk(o, func(n *Object) bool {
		if (n.Type == StringType || n.Type == BytesType) && n.Data.Borrowed() {
			detached = false
		}
		return detached
	})
	return detached
}
