package codec

import (
	"math"
	"unicode/utf8"

	"github.com/signadot/reserde/object"
	"github.com/signadot/reserde/rewrite"
)

// tagName returns the text that names the alternative identified by
// variant: a dual tag key's name, text, or the rendering of a scalar.
func tagName(variant *object.Object) (string, bool) {
	switch variant.Type {
	case object.StringType:
		return variant.Text(), true
	case object.BytesType:
		b := variant.Data.Bytes()
		if !utf8.Valid(b) {
			return "", false
		}
		return string(b), true
	case object.DualTagKeyType:
		return variant.Name, true
	case object.OptionType:
		if variant.Value == nil {
			return "", false
		}
		return tagName(variant.Value)
	}
	if variant.Type.IsScalar() {
		return rewrite.ScalarText(variant), true
	}
	return "", false
}

// tagIndex returns the numeric index of the alternative identified by
// variant, for formats that encode alternatives by position.
func tagIndex(variant *object.Object) (uint32, bool) {
	switch {
	case variant.Type == object.DualTagKeyType:
		return variant.Index, true
	case variant.Type == object.OptionType:
		if variant.Value == nil {
			return 0, false
		}
		return tagIndex(variant.Value)
	case variant.Type == object.I128Type || variant.Type == object.U128Type:
		if variant.Big == nil || variant.Big.Sign() < 0 || !variant.Big.IsUint64() {
			return 0, false
		}
		u := variant.Big.Uint64()
		return uint32(u), u <= math.MaxUint32
	case variant.Type.IsSigned():
		return uint32(variant.Int), variant.Int >= 0 && variant.Int <= math.MaxUint32
	case variant.Type.IsUnsigned():
		return uint32(variant.Uint), variant.Uint <= math.MaxUint32
	}
	return 0, false
}

// keyText renders a map key for formats whose keys are text. Byte strings
// and composites have no text form; the stringify pass exists to turn
// valid byte string keys into text beforehand.
func keyText(key *object.Object) (string, bool) {
	switch key.Type {
	case object.StringType:
		return key.Text(), true
	case object.DualTagKeyType:
		return key.Name, true
	case object.UnitTagType:
		return tagName(key.Variant)
	case object.NewtypeType:
		return keyText(key.Value)
	case object.OptionType:
		if key.Value == nil {
			return "", false
		}
		return keyText(key.Value)
	case object.F32Type, object.F64Type:
		if math.IsNaN(key.Float) || math.IsInf(key.Float, 0) {
			return "", false
		}
	}
	if key.Type.IsScalar() {
		return rewrite.ScalarText(key), true
	}
	return "", false
}

// entries returns the present key/value pairs of a map, field map or
// record, in order. Record field names become string keys.
func entries(o *object.Object) []object.Entry {
	switch o.Type {
	case object.MapType:
		return o.Entries
	case object.FieldMapType:
		res := make([]object.Entry, 0, len(o.Entries))
		for _, e := range o.Entries {
			if e.Value != nil {
				res = append(res, e)
			}
		}
		return res
	case object.RecordType:
		res := make([]object.Entry, 0, len(o.Fields))
		for _, f := range o.Fields {
			if f.Value != nil {
				res = append(res, object.KV(object.FromString(f.Name), f.Value))
			}
		}
		return res
	}
	return nil
}

// isMapLike reports whether o encodes as a map in self-describing formats.
func isMapLike(t object.Type) bool {
	return t == object.MapType || t == object.FieldMapType || t == object.RecordType
}

// unwrap strips newtypes and non-empty options, which self-describing
// formats encode as their contents.
func unwrap(o *object.Object) *object.Object {
	for {
		switch {
		case o.Type == object.NewtypeType:
			o = o.Value
		case o.Type == object.OptionType && o.Value != nil:
			o = o.Value
		default:
			return o
		}
	}
}
