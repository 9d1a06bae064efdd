package object

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// String renders o in a compact, unambiguous debug notation, for example
//
//	record Config{name: "x", port: 8080u16, debug: <omitted>}
//
// It is meant for logs and test failures, not as an interchange format.
func (o *Object) String() string {
	var b strings.Builder
	writeDebug(&b, o)
	return b.String()
}

func writeDebug(b *strings.Builder, o *Object) {
	if o == nil {
		b.WriteString("<nil>")
		return
	}
	switch o.Type {
	case BoolType:
		b.WriteString(strconv.FormatBool(o.Bool))
	case I8Type, I16Type, I32Type, I64Type:
		b.WriteString(strconv.FormatInt(o.Int, 10))
		b.WriteString(o.Type.String())
	case U8Type, U16Type, U32Type, U64Type:
		b.WriteString(strconv.FormatUint(o.Uint, 10))
		b.WriteString(o.Type.String())
	case I128Type, U128Type:
		if o.Big == nil {
			b.WriteString("0")
		} else {
			b.WriteString(o.Big.String())
		}
		b.WriteString(o.Type.String())
	case F32Type, F64Type:
		b.WriteString(FormatFloat(o.Float, o.Type.Bits()))
		b.WriteString(o.Type.String())
	case CharType:
		b.WriteString(strconv.QuoteRune(o.Char))
	case StringType:
		b.WriteString(strconv.Quote(o.Text()))
	case BytesType:
		d := o.Data.Bytes()
		if utf8.Valid(d) {
			b.WriteString("b")
			b.WriteString(strconv.Quote(string(d)))
		} else {
			b.WriteString("0x")
			b.WriteString(hex.EncodeToString(d))
		}
	case OptionType:
		if o.Value == nil {
			b.WriteString("none")
			return
		}
		b.WriteString("some(")
		writeDebug(b, o.Value)
		b.WriteString(")")
	case UnitType:
		b.WriteString("()")
	case NamedUnitType:
		b.WriteString(o.Name)
	case UnitTagType:
		b.WriteString(o.Name)
		b.WriteString("::")
		writeDebug(b, o.Variant)
	case NewtypeType:
		b.WriteString(o.Name)
		b.WriteString("(")
		writeDebug(b, o.Value)
		b.WriteString(")")
	case NewtypeTagType, TupleTagType, RecordTagType:
		b.WriteString(o.Name)
		b.WriteString("::")
		writeDebug(b, o.Variant)
		b.WriteString(" ")
		writeDebug(b, o.Value)
	case SeqType:
		writeElems(b, "[", o.Elems, "]")
	case TupleType:
		writeElems(b, "(", o.Elems, ")")
	case NamedTupleType:
		b.WriteString(o.Name)
		writeElems(b, "(", o.Elems, ")")
	case MapType, FieldMapType:
		if o.Type == FieldMapType {
			b.WriteString("fields")
		}
		b.WriteString("{")
		for i, e := range o.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDebug(b, e.Key)
			b.WriteString(": ")
			if e.Value == nil {
				b.WriteString("<absent>")
				continue
			}
			writeDebug(b, e.Value)
		}
		b.WriteString("}")
	case RecordType:
		b.WriteString("record ")
		b.WriteString(o.Name)
		b.WriteString("{")
		for i, f := range o.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			if f.Value == nil {
				b.WriteString("<omitted>")
				continue
			}
			writeDebug(b, f.Value)
		}
		b.WriteString("}")
	case DualTagKeyType:
		b.WriteString(strconv.FormatUint(uint64(o.Index), 10))
		b.WriteString("/")
		b.WriteString(strconv.Quote(o.Name))
	default:
		b.WriteString("<")
		b.WriteString(o.Type.String())
		b.WriteString(">")
	}
}

func writeElems(b *strings.Builder, open string, elems []*Object, end string) {
	b.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		writeDebug(b, e)
	}
	b.WriteString(end)
}

// FormatFloat renders f as the shortest decimal that reads back to the same
// value at the given bit size, never in exponent form. Non-finite values
// render as NaN, inf and -inf.
func FormatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if bits != 32 {
		bits = 64
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
