package codec

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

var objEq = cmp.Comparer(object.Equal)

func str(s string) *object.Object { return object.FromString(s) }
func raw(s string) *object.Object { return object.FromBytes([]byte(s)) }

// decode decodes in without detaching, so tests can inspect borrowing.
func decode(t *testing.T, f format.Format, in string, opts ...Option) (*object.Object, error) {
	t.Helper()
	dec, err := NewDecoder(f, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return dec.Decode(object.NewBuffer([]byte(in)))
}

func mustDecode(t *testing.T, f format.Format, in string, opts ...Option) *object.Object {
	t.Helper()
	o, err := decode(t, f, in, opts...)
	if err != nil {
		t.Fatalf("decode %s: %v", f, err)
	}
	return o
}

func mustEncode(t *testing.T, f format.Format, o *object.Object, opts ...Option) string {
	t.Helper()
	d, err := Encode(f, o, opts...)
	if err != nil {
		t.Fatalf("encode %s: %v", f, err)
	}
	return string(d)
}

func big2(exp uint, neg bool) *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), exp)
	if neg {
		v.Neg(v)
	}
	return v
}

func TestCapabilities(t *testing.T) {
	for _, f := range format.AllFormats() {
		_, err := NewDecoder(f)
		if (err == nil) != f.CanDecode() {
			t.Errorf("%s: decoder err %v, CanDecode %v", f, err, f.CanDecode())
		}
		_, err = NewEncoder(f)
		if (err == nil) != f.CanEncode() {
			t.Errorf("%s: encoder err %v, CanEncode %v", f, err, f.CanEncode())
		}
	}
	if _, err := NewDecoder(format.BincodeFormat); !errors.Is(err, ErrUnsupported) {
		t.Errorf("bincode decoder: %v", err)
	}
}

// everything is a tree holding every object type.
func everything() *object.Object {
	return object.Record("All",
		object.F("bool", object.FromBool(true)),
		object.F("i8", object.FromI8(-8)),
		object.F("i16", object.FromI16(-16)),
		object.F("i32", object.FromI32(-32)),
		object.F("i64", object.FromI64(-64)),
		object.F("i128", object.FromI128(big2(100, true))),
		object.F("u8", object.FromU8(8)),
		object.F("u16", object.FromU16(16)),
		object.F("u32", object.FromU32(32)),
		object.F("u64", object.FromU64(64)),
		object.F("u128", object.FromU128(big2(127, false))),
		object.F("f32", object.FromF32(0.5)),
		object.F("f64", object.FromF64(2.25)),
		object.F("char", object.FromChar('c')),
		object.F("string", str("s")),
		object.F("bytes", raw("b")),
		object.F("some", object.Some(object.FromU8(1))),
		object.F("none", object.None()),
		object.F("unit", object.Unit()),
		object.F("named", object.NamedUnit("N")),
		object.F("unittag", object.UnitTag("E", object.DualTagKey(0, "A"))),
		object.F("newtype", object.Newtype("W", object.FromU8(2))),
		object.F("newtypetag", object.NewtypeTag("E", object.DualTagKey(1, "B"), object.FromU8(3))),
		object.F("seq", object.Seq(object.FromU8(4))),
		object.F("tuple", object.Tuple(object.FromU8(5), str("t"))),
		object.F("namedtuple", object.NamedTuple("P", object.FromU8(6))),
		object.F("tupletag", object.TupleTag("E", object.DualTagKey(2, "C"), object.FromU8(7))),
		object.F("map", object.Map(object.KV(str("k"), str("v")))),
		object.F("recordtag", object.RecordTag("E", object.DualTagKey(3, "D"), object.F("x", object.FromU8(9)))),
		object.F("fieldmap", object.FieldMap(object.KV(str("p"), object.FromU8(1)), object.KV(str("q"), nil))),
		object.F("dual", object.DualTagKey(4, "Dual")),
		object.F("omitted", nil),
	)
}

func TestEncodeEveryType(t *testing.T) {
	for _, f := range format.OutputFormats() {
		if f == format.URLEncodedFormat {
			continue
		}
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewEncoder(f, Pretty(true))
			if err != nil {
				t.Fatal(err)
			}
			if err := enc.Encode(&buf, everything()); err != nil {
				t.Fatal(err)
			}
			if buf.Len() == 0 {
				t.Error("empty output")
			}
		})
	}
}

func TestEncodeTooDeep(t *testing.T) {
	o := object.Unit()
	for range 20 {
		o = object.Seq(o)
	}
	for _, f := range format.OutputFormats() {
		_, err := Encode(f, o, MaxDepth(10))
		if !errors.Is(err, object.ErrTooDeep) || !errors.Is(err, ErrEncode) {
			t.Errorf("%s: got %v", f, err)
		}
	}
}

func TestDecodeDetaches(t *testing.T) {
	o, err := Decode(format.BencodeFormat, []byte("l3:abce"))
	if err != nil {
		t.Fatal(err)
	}
	if !object.IsDetached(o) {
		t.Errorf("%s borrows after Decode", o)
	}
}

func TestPath(t *testing.T) {
	var p *path
	if got := p.String(); got != "$" {
		t.Errorf("root path %q", got)
	}
	got := p.Field("a").Index(2).Field("b").String()
	if got != "$.a[2].b" {
		t.Errorf("got %q", got)
	}
}

func TestTagHelpers(t *testing.T) {
	if n, ok := tagName(object.DualTagKey(1, "X")); !ok || n != "X" {
		t.Errorf("dual name %q %v", n, ok)
	}
	if _, ok := tagName(raw("\xff")); ok {
		t.Error("invalid utf-8 should have no name")
	}
	if n, ok := tagName(object.FromU32(3)); !ok || n != "3" {
		t.Errorf("numeric name %q %v", n, ok)
	}
	if i, ok := tagIndex(object.DualTagKey(7, "X")); !ok || i != 7 {
		t.Errorf("dual index %d %v", i, ok)
	}
	if _, ok := tagIndex(str("X")); ok {
		t.Error("text has no index")
	}
	if _, ok := tagIndex(object.FromI64(-1)); ok {
		t.Error("negative index")
	}
	if _, ok := keyText(raw("k")); ok {
		t.Error("bytes key should not render")
	}
	if k, ok := keyText(object.Some(object.FromBool(true))); !ok || k != "true" {
		t.Errorf("option key %q %v", k, ok)
	}
}

func containsAll(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(s, p) {
			t.Errorf("%q does not contain %q", s, p)
		}
	}
}
