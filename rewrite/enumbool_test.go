package rewrite

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/reserde/object"
)

func TestEnumBoolsSelectivity(t *testing.T) {
	tests := []struct {
		variant *object.Object
		want    *object.Object
	}{
		{str("true"), object.FromBool(true)},
		{str("True"), object.FromBool(true)},
		{str("FALSE"), object.FromBool(false)},
		{raw("fAlSe"), object.FromBool(false)},
		{str("truthy"), object.UnitTag("Bool", str("truthy"))},
		{str("yes"), object.UnitTag("Bool", str("yes"))},
		{object.FromU32(1), object.UnitTag("Bool", object.FromU32(1))},
		{object.DualTagKey(1, "true"), object.UnitTag("Bool", object.DualTagKey(1, "true"))},
		{str("tru"), object.UnitTag("Bool", str("tru"))},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			o := object.UnitTag("Bool", tt.variant)
			EnumBools(o)
			if diff := cmp.Diff(tt.want, o, objEq); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnumBoolsOnlyUnitTags(t *testing.T) {
	mk := func() *object.Object {
		return object.Seq(
			str("true"),
			object.NewtypeTag("E", str("true"), object.Unit()),
			object.TupleTag("E", str("false")),
			object.RecordTag("E", str("true")),
			object.NamedUnit("true"),
		)
	}
	o := mk()
	EnumBools(o)
	if diff := cmp.Diff(mk(), o, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEnumBoolsTraversal(t *testing.T) {
	tag := func(s string) *object.Object { return object.UnitTag("B", str(s)) }
	o := object.Record("R",
		object.F("opt", object.Some(tag("true"))),
		object.F("newtype", object.Newtype("N", tag("false"))),
		object.F("seq", object.Seq(tag("TRUE"), object.Tuple(tag("false")))),
		object.F("map", object.Map(object.KV(tag("true"), tag("false")))),
		object.F("fields", object.FieldMap(object.KV(tag("false"), nil))),
		object.F("payload", object.NewtypeTag("E", str("V"), tag("true"))),
		object.F("omitted", nil),
	)
	EnumBools(o)
	want := object.Record("R",
		object.F("opt", object.Some(object.FromBool(true))),
		object.F("newtype", object.Newtype("N", object.FromBool(false))),
		object.F("seq", object.Seq(object.FromBool(true), object.Tuple(object.FromBool(false)))),
		object.F("map", object.Map(object.KV(object.FromBool(true), object.FromBool(false)))),
		object.F("fields", object.FieldMap(object.KV(object.FromBool(false), nil))),
		object.F("payload", object.NewtypeTag("E", str("V"), object.FromBool(true))),
		object.F("omitted", nil),
	)
	if diff := cmp.Diff(want, o, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEnumBoolsNestedIdentifier(t *testing.T) {
	// The identifier is rewritten first, so an option wrapping a tag
	// stays an option.
	o := object.UnitTag("Outer", object.Some(object.UnitTag("Inner", str("true"))))
	EnumBools(o)
	want := object.UnitTag("Outer", object.Some(object.FromBool(true)))
	if diff := cmp.Diff(want, o, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEnumBoolsHandlesEveryType(t *testing.T) {
	for _, typ := range object.Types() {
		EnumBools(object.Seq(zeroOf(typ)))
	}
}

func TestEndToEnd(t *testing.T) {
	o := object.RecordTag("Status", object.DualTagKey(1, "Active"),
		object.F("enabled", object.UnitTag("Bool", str("true"))),
	)
	EnumBools(o)
	want := object.RecordTag("Status", object.DualTagKey(1, "Active"),
		object.F("enabled", object.FromBool(true)),
	)
	if diff := cmp.Diff(want, o, objEq); diff != "" {
		t.Fatalf("after enum bools (-want +got):\n%s", diff)
	}
	Stringify(o, UTF8)
	if diff := cmp.Diff(want, o, objEq); diff != "" {
		t.Errorf("after stringify (-want +got):\n%s", diff)
	}
}

func TestStringifyBeforeEnumBoolsLosesNothing(t *testing.T) {
	// Stringify leaves unit tags in place, so coercion still finds byte
	// string identifiers it has turned into text.
	o := object.UnitTag("Bool", raw("false"))
	Stringify(o, UTF8)
	EnumBools(o)
	if diff := cmp.Diff(object.FromBool(false), o, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
