package codec

import (
	"errors"
	"testing"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

func TestBincodeEncode(t *testing.T) {
	tests := []struct {
		name string
		o    *object.Object
		want string
	}{
		{"record tag", object.RecordTag("E", object.DualTagKey(2, "B"), object.F("x", object.FromU16(1)), object.F("s", str("hi"))),
			"\x02\x00\x00\x00\x01\x00\x02\x00\x00\x00\x00\x00\x00\x00hi"},
		{"option", object.Seq(object.Some(object.FromU8(5)), object.None()),
			"\x02\x00\x00\x00\x00\x00\x00\x00\x01\x05\x00"},
		{"i128", object.FromI128(big2(0, true)), "\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff"},
		{"u128", object.FromU128(big2(64, false)), "\x00\x00\x00\x00\x00\x00\x00\x00\x01\x00\x00\x00\x00\x00\x00\x00"},
		{"tuple", object.Tuple(object.FromI8(-1), object.FromBool(true), object.FromChar('é')), "\xff\x01\xc3\xa9"},
		{"numeric variant", object.UnitTag("E", object.FromU32(3)), "\x03\x00\x00\x00"},
		{"unit", object.Record("R", object.F("u", object.Unit()), object.F("o", nil)), ""},
		{"f64", object.FromF64(1), "\x00\x00\x00\x00\x00\x00\xf0\x3f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustEncode(t, format.BincodeFormat, tt.o); got != tt.want {
				t.Errorf("got %x want %x", got, tt.want)
			}
		})
	}
}

func TestBincodeNeedsIndex(t *testing.T) {
	_, err := Encode(format.BincodeFormat, object.Seq(object.UnitTag("E", str("A"))))
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("got %v", err)
	}
	containsAll(t, err.Error(), "$[0]", "no index")
}
