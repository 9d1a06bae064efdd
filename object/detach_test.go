package object

import (
	"math/big"
	"testing"
)

// sample builds a record holding one node of every type, with its string
// and bytes leaves borrowing from buf.
func sample(buf *Buffer) *Object {
	text := func(off, end int) *Object { return StringFrom(Borrow(buf, off, end)) }
	raw := func(off, end int) *Object { return BytesFrom(Borrow(buf, off, end)) }
	return Record("Everything",
		F("bool", FromBool(true)),
		F("i8", FromI8(-8)),
		F("i16", FromI16(-16)),
		F("i32", FromI32(-32)),
		F("i64", FromI64(-64)),
		F("i128", FromI128(new(big.Int).Lsh(big.NewInt(-1), 100))),
		F("u8", FromU8(8)),
		F("u16", FromU16(16)),
		F("u32", FromU32(32)),
		F("u64", FromU64(64)),
		F("u128", FromU128(new(big.Int).Lsh(big.NewInt(1), 100))),
		F("f32", FromF32(1.5)),
		F("f64", FromF64(2.25)),
		F("char", FromChar('λ')),
		F("string", text(0, 5)),
		F("bytes", raw(6, 11)),
		F("some", Some(text(0, 5))),
		F("none", None()),
		F("unit", Unit()),
		F("named-unit", NamedUnit("Marker")),
		F("unit-tag", UnitTag("State", text(12, 18))),
		F("newtype", Newtype("Meters", FromF64(3))),
		F("newtype-tag", NewtypeTag("Shape", DualTagKey(2, "Circle"), FromF64(1))),
		F("seq", Seq(FromU8(1), raw(6, 11), FromU8(3))),
		F("tuple", Tuple(FromBool(false), text(0, 5))),
		F("named-tuple", NamedTuple("Pair", FromI32(1), FromI32(2))),
		F("tuple-tag", TupleTag("Msg", FromU32(0), FromU8(9), text(12, 18))),
		F("map", Map(KV(raw(6, 11), FromU8(1)), KV(FromU64(42), text(0, 5)))),
		F("record-tag", RecordTag("Event", text(12, 18), F("at", FromU64(7)), F("skipped", nil))),
		F("field-map", FieldMap(KV(text(0, 5), nil), KV(text(12, 18), raw(6, 11)))),
		F("dual", DualTagKey(1, "Active")),
		F("omitted", nil),
	)
}

func sampleBuffer() *Buffer {
	return NewBuffer([]byte("hello world active"))
}

func TestSampleCoversEveryType(t *testing.T) {
	seen := map[Type]bool{}
	Walk(sample(sampleBuffer()), func(o *Object) bool {
		seen[o.Type] = true
		return true
	})
	for _, typ := range Types() {
		if !seen[typ] {
			t.Errorf("sample has no %s node", typ)
		}
	}
}

func TestDetachPreservesStructure(t *testing.T) {
	buf := sampleBuffer()
	o := sample(buf)
	if IsDetached(o) {
		t.Fatal("sample should borrow from its buffer")
	}
	d := Detach(o)
	if !Equal(o, d) {
		t.Fatalf("detached tree differs:\n got %s\nwant %s", d, o)
	}
	if !IsDetached(d) {
		t.Error("detached tree still borrows")
	}
	if Count(o) != Count(d) {
		t.Errorf("node count %d, want %d", Count(d), Count(o))
	}
}

func TestDetachSurvivesRelease(t *testing.T) {
	buf := sampleBuffer()
	want := Detach(sample(NewBuffer([]byte("hello world active"))))
	d := Detach(sample(buf))
	buf.Release()
	if !buf.Released() {
		t.Fatal("buffer not released")
	}
	if !Equal(d, want) {
		t.Errorf("detached tree changed after release:\n got %s\nwant %s", d, want)
	}
}

func TestDetachSharesNothing(t *testing.T) {
	orig := []byte("abc")
	o := Seq(FromBytes(orig), FromI128(big.NewInt(5)))
	d := Detach(o)
	orig[0] = 'x'
	o.Elems[1].Big.SetInt64(6)
	if got := d.Elems[0].Text(); got != "abc" {
		t.Errorf("bytes = %q, want %q", got, "abc")
	}
	if got := d.Elems[1].Big.Int64(); got != 5 {
		t.Errorf("i128 = %d, want 5", got)
	}
	if d.Elems[0] == o.Elems[0] {
		t.Error("leaf pointer shared")
	}
}

func TestDetachIdempotent(t *testing.T) {
	d := Detach(sample(sampleBuffer()))
	if dd := Detach(d); !Equal(d, dd) {
		t.Errorf("second detach differs:\n got %s\nwant %s", dd, d)
	}
}

func TestDetachNil(t *testing.T) {
	if Detach(nil) != nil {
		t.Error("Detach(nil) != nil")
	}
}

func TestReadAfterReleasePanics(t *testing.T) {
	buf := NewBuffer([]byte("abc"))
	o := StringFrom(Borrow(buf, 0, 3))
	buf.Release()
	defer func() {
		if recover() == nil {
			t.Error("expected panic reading released buffer")
		}
	}()
	_ = o.Text()
}

func TestBorrowOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Borrow(NewBuffer([]byte("ab")), 1, 3)
}
