// Package object provides the canonical value model shared by every codec.
//
// # Overview
//
// Every supported serialization format decodes into, and encodes from, a
// tree of [Object] nodes. The model is a strict superset of what any single
// format can express: maps with arbitrary keys, booleans, enumerations,
// raw byte strings, named aggregates and so on. Decoding from one format and
// encoding to another therefore never loses content the target format could
// have represented.
//
// The Object is a flat tagged union. The Type field selects the variant and
// the payload lives in the fields documented for that variant:
//
//   - BoolType: Bool
//   - I8Type .. I64Type: Int
//   - U8Type .. U64Type: Uint
//   - I128Type, U128Type: Big
//   - F32Type, F64Type: Float
//   - CharType: Char
//   - StringType, BytesType: Data
//   - OptionType: Value (nil when empty)
//   - UnitType: nothing
//   - NamedUnitType: Name
//   - UnitTagType: Name, Variant
//   - NewtypeType: Name, Value
//   - NewtypeTagType: Name, Variant, Value
//   - SeqType, TupleType: Elems
//   - NamedTupleType: Name, Elems
//   - TupleTagType: Name, Variant, Value (a TupleType object)
//   - MapType: Entries
//   - RecordType: Name, Fields
//   - RecordTagType: Name, Variant, Value (a RecordType object)
//   - FieldMapType: Entries, where an Entry may have a nil Value
//   - DualTagKeyType: Index, Name
//
// The Variant of a tag variant identifies the chosen alternative. It is an
// Object in its own right, most often a string, an unsigned integer or a
// DualTagKeyType carrying both the index and the name so that an encoder
// can pick whichever its format uses.
//
// # Invariants
//
// Children of composite nodes are always valid objects. String and bytes
// leaves are never told apart by content: a bytes leaf holding valid UTF-8
// stays a bytes leaf until a rewrite pass converts it. Sibling order in
// sequences, tuples, records, maps and field maps is preserved by every
// operation in this module.
//
// # Borrowed and owned data
//
// String and bytes leaves store their contents in a [Data]. A Data either
// borrows a range of a decoder's input [Buffer] or owns its bytes. Ownership
// is not part of the variant: a borrowed string and an owned string are both
// StringType. [Detach] is the single conversion from a tree that may borrow
// to one that does not. The intended lifecycle is
//
//	buf := object.NewBuffer(input)
//	o, err := dec.Decode(buf)
//	...
//	o = object.Detach(o)
//	buf.Release()
//
// after which o is safe to keep indefinitely.
//
// # Depth
//
// Detachment and the rewrite passes recurse once per tree level. Trees
// produced by untrusted input should be checked with [CheckDepth], which is
// iterative, before being handed to recursive code.
//
// # Thread Safety
//
// Objects are not safe for concurrent mutation. A tree is owned by one
// pipeline at a time.
package object
