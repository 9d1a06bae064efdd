package object

import (
	"fmt"
)

// Type selects the variant of an Object.
type Type int

const (
	BoolType Type = iota
	I8Type
	I16Type
	I32Type
	I64Type
	I128Type
	U8Type
	U16Type
	U32Type
	U64Type
	U128Type
	F32Type
	F64Type
	CharType
	StringType
	BytesType
	OptionType
	UnitType
	NamedUnitType
	UnitTagType
	NewtypeType
	NewtypeTagType
	SeqType
	TupleType
	NamedTupleType
	TupleTagType
	MapType
	RecordType
	RecordTagType
	FieldMapType
	DualTagKeyType

	numTypes
)

var typeNames = [numTypes]string{
	BoolType:       "bool",
	I8Type:         "i8",
	I16Type:        "i16",
	I32Type:        "i32",
	I64Type:        "i64",
	I128Type:       "i128",
	U8Type:         "u8",
	U16Type:        "u16",
	U32Type:        "u32",
	U64Type:        "u64",
	U128Type:       "u128",
	F32Type:        "f32",
	F64Type:        "f64",
	CharType:       "char",
	StringType:     "string",
	BytesType:      "bytes",
	OptionType:     "option",
	UnitType:       "unit",
	NamedUnitType:  "named-unit",
	UnitTagType:    "unit-tag",
	NewtypeType:    "newtype",
	NewtypeTagType: "newtype-tag",
	SeqType:        "seq",
	TupleType:      "tuple",
	NamedTupleType: "named-tuple",
	TupleTagType:   "tuple-tag",
	MapType:        "map",
	RecordType:     "record",
	RecordTagType:  "record-tag",
	FieldMapType:   "field-map",
	DualTagKeyType: "dual-tag-key",
}

// Types returns every variant in declaration order.
func Types() []Type {
	res := make([]Type, numTypes)
	for i := range res {
		res[i] = Type(i)
	}
	return res
}

func (t Type) String() string {
	if t < 0 || t >= numTypes {
		return fmt.Sprintf("<bad type %d>", int(t))
	}
	return typeNames[t]
}

// IsSigned reports whether t is a signed integer type.
func (t Type) IsSigned() bool {
	return t >= I8Type && t <= I128Type
}

// IsUnsigned reports whether t is an unsigned integer type.
func (t Type) IsUnsigned() bool {
	return t >= U8Type && t <= U128Type
}

// IsInteger reports whether t is an integer type of any width.
func (t Type) IsInteger() bool {
	return t.IsSigned() || t.IsUnsigned()
}

// IsFloat reports whether t is a floating point type.
func (t Type) IsFloat() bool {
	return t == F32Type || t == F64Type
}

// IsScalar reports whether t is a number, bool or char. Strings and bytes
// are leaves but not scalars.
func (t Type) IsScalar() bool {
	return t == BoolType || t.IsInteger() || t.IsFloat() || t == CharType
}

// IsTag reports whether t is one of the tag variants, which carry a Variant
// identifying an enumeration alternative.
func (t Type) IsTag() bool {
	switch t {
	case UnitTagType, NewtypeTagType, TupleTagType, RecordTagType:
		return true
	}
	return false
}

// Bits returns the width of an integer or float type, or 0.
func (t Type) Bits() int {
	switch t {
	case I8Type, U8Type:
		return 8
	case I16Type, U16Type:
		return 16
	case I32Type, U32Type, F32Type:
		return 32
	case I64Type, U64Type, F64Type:
		return 64
	case I128Type, U128Type:
		return 128
	}
	return 0
}
