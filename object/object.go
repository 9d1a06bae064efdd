package object

import (
	"math/big"
)

// Object is a single node of a value tree. See the package documentation
// for which fields are meaningful for each Type.
type Object struct {
	Type Type

	// Name is the type name of named units, newtypes, named tuples, records
	// and tag variants, or the alternative name of a dual tag key.
	Name string

	Bool  bool
	Int   int64
	Uint  uint64
	Big   *big.Int
	Float float64
	Char  rune
	Data  Data

	// Index is the alternative index of a dual tag key.
	Index uint32

	// Variant identifies the alternative of a tag variant.
	Variant *Object
	// Value is the contents of an option (nil when empty) or the payload
	// of a newtype or tag variant.
	Value *Object

	Elems   []*Object
	Entries []Entry
	Fields  []Field
}

// Entry is one key/value pair of a map or field map. Value is nil only in
// a field map, for an absent value.
type Entry struct {
	Key   *Object
	Value *Object
}

// Field is one named field of a record. A nil Value marks a field the
// producer intentionally omitted.
type Field struct {
	Name  string
	Value *Object
}

func FromBool(v bool) *Object {
	return &Object{Type: BoolType, Bool: v}
}

func FromI8(v int8) *Object   { return &Object{Type: I8Type, Int: int64(v)} }
func FromI16(v int16) *Object { return &Object{Type: I16Type, Int: int64(v)} }
func FromI32(v int32) *Object { return &Object{Type: I32Type, Int: int64(v)} }
func FromI64(v int64) *Object { return &Object{Type: I64Type, Int: v} }

func FromU8(v uint8) *Object   { return &Object{Type: U8Type, Uint: uint64(v)} }
func FromU16(v uint16) *Object { return &Object{Type: U16Type, Uint: uint64(v)} }
func FromU32(v uint32) *Object { return &Object{Type: U32Type, Uint: uint64(v)} }
func FromU64(v uint64) *Object { return &Object{Type: U64Type, Uint: v} }

// FromI128 returns an i128 leaf. The caller must keep v within the signed
// 128 bit range and must not modify it afterwards.
func FromI128(v *big.Int) *Object {
	return &Object{Type: I128Type, Big: v}
}

// FromU128 returns a u128 leaf. The caller must keep v within the unsigned
// 128 bit range and must not modify it afterwards.
func FromU128(v *big.Int) *Object {
	return &Object{Type: U128Type, Big: v}
}

func FromF32(v float32) *Object { return &Object{Type: F32Type, Float: float64(v)} }
func FromF64(v float64) *Object { return &Object{Type: F64Type, Float: v} }

func FromChar(r rune) *Object {
	return &Object{Type: CharType, Char: r}
}

func FromString(s string) *Object {
	return &Object{Type: StringType, Data: OwnString(s)}
}

// FromBytes returns an owned bytes leaf holding b.
func FromBytes(b []byte) *Object {
	return &Object{Type: BytesType, Data: Own(b)}
}

// StringFrom returns a string leaf backed by d.
func StringFrom(d Data) *Object {
	return &Object{Type: StringType, Data: d}
}

// BytesFrom returns a bytes leaf backed by d.
func BytesFrom(d Data) *Object {
	return &Object{Type: BytesType, Data: d}
}

// Some returns a non-empty option wrapping v.
func Some(v *Object) *Object {
	return &Object{Type: OptionType, Value: v}
}

// None returns an empty option.
func None() *Object {
	return &Object{Type: OptionType}
}

func Unit() *Object {
	return &Object{Type: UnitType}
}

func NamedUnit(name string) *Object {
	return &Object{Type: NamedUnitType, Name: name}
}

func UnitTag(name string, variant *Object) *Object {
	return &Object{Type: UnitTagType, Name: name, Variant: variant}
}

func Newtype(name string, v *Object) *Object {
	return &Object{Type: NewtypeType, Name: name, Value: v}
}

func NewtypeTag(name string, variant, v *Object) *Object {
	return &Object{Type: NewtypeTagType, Name: name, Variant: variant, Value: v}
}

func Seq(elems ...*Object) *Object {
	return &Object{Type: SeqType, Elems: elems}
}

func Tuple(elems ...*Object) *Object {
	return &Object{Type: TupleType, Elems: elems}
}

func NamedTuple(name string, elems ...*Object) *Object {
	return &Object{Type: NamedTupleType, Name: name, Elems: elems}
}

// TupleTag returns a tuple tag whose payload is a tuple of elems.
func TupleTag(name string, variant *Object, elems ...*Object) *Object {
	return &Object{Type: TupleTagType, Name: name, Variant: variant, Value: Tuple(elems...)}
}

func Map(entries ...Entry) *Object {
	return &Object{Type: MapType, Entries: entries}
}

func Record(name string, fields ...Field) *Object {
	return &Object{Type: RecordType, Name: name, Fields: fields}
}

// RecordTag returns a record tag whose payload is a record of fields.
func RecordTag(name string, variant *Object, fields ...Field) *Object {
	return &Object{Type: RecordTagType, Name: name, Variant: variant, Value: Record(name, fields...)}
}

func FieldMap(entries ...Entry) *Object {
	return &Object{Type: FieldMapType, Entries: entries}
}

func DualTagKey(index uint32, name string) *Object {
	return &Object{Type: DualTagKeyType, Index: index, Name: name}
}

// KV is shorthand for an Entry.
func KV(k, v *Object) Entry {
	return Entry{Key: k, Value: v}
}

// F is shorthand for a Field.
func F(name string, v *Object) Field {
	return Field{Name: name, Value: v}
}

// Text returns the contents of a string or bytes leaf as a string.
func (o *Object) Text() string {
	return o.Data.String()
}

// SetText replaces o in place with a string leaf holding s.
func (o *Object) SetText(s string) {
	*o = Object{Type: StringType, Data: OwnString(s)}
}

// SetBool replaces o in place with a bool leaf.
func (o *Object) SetBool(v bool) {
	*o = Object{Type: BoolType, Bool: v}
}
