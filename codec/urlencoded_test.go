package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

func TestURLDecode(t *testing.T) {
	got := mustDecode(t, format.URLEncodedFormat, "a=1&b=x+y&&a=%41&c&d=caf%E9")
	want := object.Map(
		object.KV(str("a"), str("1")),
		object.KV(str("b"), str("x y")),
		object.KV(str("a"), str("A")),
		object.KV(str("c"), str("")),
		object.KV(str("d"), raw("caf\xe9")),
	)
	if diff := cmp.Diff(want, got, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !got.Entries[0].Value.Data.Borrowed() || got.Entries[1].Value.Data.Borrowed() {
		t.Error("only unescaped parts borrow")
	}
	if _, err := decode(t, format.URLEncodedFormat, "a=%zz"); !errors.Is(err, ErrDecode) {
		t.Errorf("got %v", err)
	}
	empty := mustDecode(t, format.URLEncodedFormat, "")
	if diff := cmp.Diff(object.Map(), empty, objEq); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestURLEncode(t *testing.T) {
	o := object.Record("Q",
		object.F("q", str("a b&c")),
		object.F("n", object.FromU32(3)),
		object.F("o", object.None()),
		object.F("e", object.UnitTag("E", object.DualTagKey(0, "On"))),
		object.F("skipped", nil),
	)
	if got := mustEncode(t, format.URLEncodedFormat, o); got != "q=a+b%26c&n=3&e=On" {
		t.Errorf("got %s", got)
	}
	pairs := object.Seq(object.Tuple(str("k"), object.FromBool(true)), object.Seq(str("k"), object.FromF64(0.5)))
	if got := mustEncode(t, format.URLEncodedFormat, pairs); got != "k=true&k=0.5" {
		t.Errorf("got %s", got)
	}
	for _, bad := range []*object.Object{
		object.Map(object.KV(str("a"), object.Seq())),
		object.FromU8(1),
		object.Seq(object.FromU8(1)),
	} {
		if _, err := Encode(format.URLEncodedFormat, bad); !errors.Is(err, ErrEncode) {
			t.Errorf("%s: got %v", bad, err)
		}
	}
}
