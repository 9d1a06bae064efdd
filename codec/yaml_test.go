package codec

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

func TestYAMLDecode(t *testing.T) {
	in := `
base: &b
  x: 1
copy: *b
big: 1180591620717411303424
neg: -3
f: .inf
on: true
nothing: ~
blob: !!binary aGk=
quoted: "12"
list: [a, 2.5]
1: one
`
	got := mustDecode(t, format.YAMLFormat, in)
	x := object.Map(object.KV(str("x"), object.FromI64(1)))
	bigV := object.FromI128(big2(70, false))
	want := object.Map(
		object.KV(str("base"), x),
		object.KV(str("copy"), x),
		object.KV(str("big"), bigV),
		object.KV(str("neg"), object.FromI64(-3)),
		object.KV(str("f"), object.FromF64(math.Inf(1))),
		object.KV(str("on"), object.FromBool(true)),
		object.KV(str("nothing"), object.Unit()),
		object.KV(str("blob"), raw("hi")),
		object.KV(str("quoted"), str("12")),
		object.KV(str("list"), object.Seq(str("a"), object.FromF64(2.5))),
		object.KV(object.FromI64(1), str("one")),
	)
	if diff := cmp.Diff(want, got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestYAMLDocuments(t *testing.T) {
	got := mustDecode(t, format.YAMLFormat, "a\n---\nb\n")
	if diff := cmp.Diff(object.Seq(str("a"), str("b")), got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	got = mustDecode(t, format.YAMLFormat, "")
	if diff := cmp.Diff(object.Unit(), got, objEq); diff != "" {
		t.Errorf("empty (-want +got):\n%s", diff)
	}
}

func TestYAMLEnumTags(t *testing.T) {
	got := mustDecode(t, format.YAMLFormat, "[!Active , !Size 3, !Point [1, 2]]")
	want := object.Seq(
		object.UnitTag("", str("Active")),
		object.NewtypeTag("", str("Size"), object.FromI64(3)),
		object.NewtypeTag("", str("Point"), object.Seq(object.FromI64(1), object.FromI64(2))),
	)
	if diff := cmp.Diff(want, got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestYAMLErrors(t *testing.T) {
	for _, in := range []string{"a: [", "a: *missing", "{a: 1"} {
		if _, err := decode(t, format.YAMLFormat, in); !errors.Is(err, ErrDecode) {
			t.Errorf("%q: got %v", in, err)
		}
	}
	if _, err := decode(t, format.YAMLFormat, "[[[[1]]]]", MaxDepth(3)); !errors.Is(err, ErrDecode) || !errors.Is(err, object.ErrTooDeep) {
		t.Errorf("depth: got %v", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	o := object.Map(
		object.KV(object.FromU8(1), str("true")),
		object.KV(str("k"), object.Seq(object.FromF64(1.5), object.FromF64(2), object.Unit())),
		object.KV(str("b"), raw("\x00\x01")),
		object.KV(str("nan"), object.FromF64(math.Inf(-1))),
		object.KV(object.Seq(str("complex")), object.FromBool(false)),
	)
	text := mustEncode(t, format.YAMLFormat, o)
	got := mustDecode(t, format.YAMLFormat, text)
	want := object.Map(
		object.KV(object.FromI64(1), str("true")),
		object.KV(str("k"), object.Seq(object.FromF64(1.5), object.FromF64(2), object.Unit())),
		object.KV(str("b"), raw("\x00\x01")),
		object.KV(str("nan"), object.FromF64(math.Inf(-1))),
		object.KV(object.Seq(str("complex")), object.FromBool(false)),
	)
	if diff := cmp.Diff(want, got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s\n%s", diff, text)
	}
}

func TestYAMLEncodeTags(t *testing.T) {
	o := object.Seq(
		object.UnitTag("E", object.DualTagKey(0, "On")),
		object.NewtypeTag("E", str("V"), object.FromU8(1)),
	)
	got := mustEncode(t, format.YAMLFormat, o)
	if got != "- On\n- V: 1\n" {
		t.Errorf("got %q", got)
	}
	_, err := Encode(format.YAMLFormat, object.UnitTag("E", object.Seq()))
	if !errors.Is(err, ErrEncode) || !strings.Contains(err.Error(), "$") {
		t.Errorf("got %v", err)
	}
}
