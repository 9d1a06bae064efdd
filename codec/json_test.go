package codec

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

func TestJSONDecode(t *testing.T) {
	in := `{"s":"plain","n":null,"i":-5,"u":18446744073709551615,` +
		`"b":170141183460469231731687303715884105728,"f":1.5,"t":true,"a":[1,{}]}`
	got := mustDecode(t, format.JSONFormat, in)
	want := object.Map(
		object.KV(str("s"), str("plain")),
		object.KV(str("n"), object.Unit()),
		object.KV(str("i"), object.FromI64(-5)),
		object.KV(str("u"), object.FromU64(math.MaxUint64)),
		object.KV(str("b"), object.FromU128(big2(127, false))),
		object.KV(str("f"), object.FromF64(1.5)),
		object.KV(str("t"), object.FromBool(true)),
		object.KV(str("a"), object.Seq(object.FromI64(1), object.Map())),
	)
	if diff := cmp.Diff(want, got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !got.Entries[0].Value.Data.Borrowed() {
		t.Error("unescaped string should borrow from the input")
	}
}

func TestJSONDecodeEscapes(t *testing.T) {
	got := mustDecode(t, format.JSONFormat, `["a\nb","é","x"]`)
	want := object.Seq(str("a\nb"), str("é"), str("x"))
	if diff := cmp.Diff(want, got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestJSONDecodeErrors(t *testing.T) {
	for _, in := range []string{``, `{"a":}`, `[1 2]`, `{"a":1,}`, `1 2`, `1e400`, `"unterminated`} {
		_, err := decode(t, format.JSONFormat, in)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("%q: got %v", in, err)
		}
	}
	_, err := decode(t, format.JSONFormat, `[[[[1]]]]`, MaxDepth(3))
	if !errors.Is(err, ErrDecode) || !errors.Is(err, object.ErrTooDeep) {
		t.Errorf("depth: got %v", err)
	}
}

func TestJSONC(t *testing.T) {
	in := "{\n  // comment\n  \"a\": [1, 2,], /* more */\n  \"b\": \"c\",\n}"
	got := mustDecode(t, format.JSONCFormat, in)
	want := object.Map(
		object.KV(str("a"), object.Seq(object.FromI64(1), object.FromI64(2))),
		object.KV(str("b"), str("c")),
	)
	if diff := cmp.Diff(want, got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := decode(t, format.JSONFormat, in); err == nil {
		t.Error("plain json should reject comments")
	}
}

func TestJSONEncode(t *testing.T) {
	o := object.Map(
		object.KV(str("a"), object.FromI64(1)),
		object.KV(str("b"), object.Seq(object.FromBool(true), object.Unit())),
		object.KV(str("c"), object.Map()),
	)
	if got := mustEncode(t, format.JSONFormat, o); got != `{"a":1,"b":[true,null],"c":{}}`+"\n" {
		t.Errorf("compact: %s", got)
	}
	want := `{
  "a": 1,
  "b": [
    true,
    null
  ],
  "c": {}
}
`
	if got := mustEncode(t, format.JSONFormat, o, Pretty(true)); got != want {
		t.Errorf("pretty: %s", got)
	}
}

func TestJSONEncodeFallbacks(t *testing.T) {
	tests := []struct {
		name string
		o    *object.Object
		want string
	}{
		{"bytes", raw("hi"), `[104,105]`},
		{"nan", object.FromF64(math.NaN()), `null`},
		{"float", object.FromF64(1), `1.0`},
		{"f32", object.FromF32(0.1), `0.1`},
		{"big float", object.FromF64(1e21), `1e+21`},
		{"i128", object.FromI128(big2(100, true)), `-1267650600228229401496703205376`},
		{"char", object.FromChar('"'), `"\""`},
		{"html", str("<&>"), `"<&>"`},
		{"none", object.None(), `null`},
		{"named unit", object.NamedUnit("U"), `null`},
		{"unit tag", object.UnitTag("E", object.DualTagKey(1, "On")), `"On"`},
		{"newtype tag", object.NewtypeTag("E", str("V"), object.FromU8(1)), `{"V":1}`},
		{"tuple tag", object.TupleTag("E", str("T"), object.FromU8(1), object.FromU8(2)), `{"T":[1,2]}`},
		{"record tag", object.RecordTag("E", object.DualTagKey(0, "R"), object.F("x", object.FromU8(1))), `{"R":{"x":1}}`},
		{"record", object.Record("R", object.F("a", object.FromU8(1)), object.F("b", nil)), `{"a":1}`},
		{"field map", object.FieldMap(object.KV(str("a"), nil), object.KV(str("b"), object.FromU8(2))), `{"b":2}`},
		{"scalar keys", object.Map(object.KV(object.FromU32(1), object.FromBool(false)), object.KV(object.FromBool(true), object.Unit())), `{"1":false,"true":null}`},
		{"newtype", object.Newtype("N", object.Tuple(object.FromU8(1))), `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustEncode(t, format.JSONFormat, tt.o); got != tt.want+"\n" {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestJSONEncodeKeyError(t *testing.T) {
	o := object.Map(object.KV(str("a"), object.Seq(object.FromU8(0), object.Map(object.KV(raw("k"), object.FromU8(1))))))
	_, err := Encode(format.JSONFormat, o)
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("got %v", err)
	}
	containsAll(t, err.Error(), "$.a[1]", "json")
}

func TestJSONColors(t *testing.T) {
	c := NewColors()
	c.Map = map[Colorable]func(string, ...any) string{
		{Type: object.StringType, Attr: KeyColor}: func(s string, _ ...any) string { return "<" + s + ">" },
	}
	got := mustEncode(t, format.JSONFormat, object.Map(object.KV(str("k"), str("v"))), WithColors(c))
	if got != `{<"k">:"v"}`+"\n" {
		t.Errorf("got %s", got)
	}
}
