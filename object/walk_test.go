package object

import (
	"errors"
	"testing"
)

func nested(n int) *Object {
	o := FromU8(0)
	for range n - 1 {
		o = Seq(o)
	}
	return o
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		o    *Object
		want int
	}{
		{"nil", nil, 0},
		{"leaf", FromBool(true), 1},
		{"empty seq", Seq(), 1},
		{"seq", Seq(FromU8(1)), 2},
		{"map key", Map(KV(Seq(Seq(FromU8(1))), FromU8(2))), 4},
		{"record", Record("R", F("a", Some(FromU8(1))), F("b", nil)), 3},
		{"tag", UnitTag("E", FromString("x")), 2},
		{"deep", nested(10000), 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Depth(tt.o); got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckDepth(t *testing.T) {
	if err := CheckDepth(nested(10), 10); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := CheckDepth(nested(11), 10)
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("got %v, want ErrTooDeep", err)
	}
	if err := CheckDepth(nested(DefaultMaxDepth+1), 0); !errors.Is(err, ErrTooDeep) {
		t.Errorf("default limit: got %v, want ErrTooDeep", err)
	}
}

func TestWalkOrder(t *testing.T) {
	o := Map(
		KV(FromString("a"), FromU8(1)),
		KV(FromString("b"), Seq(FromU8(2), FromU8(3))),
	)
	var got []string
	Walk(o, func(n *Object) bool {
		got = append(got, n.String())
		return true
	})
	want := []string{`{"a": 1u8, "b": [2u8, 3u8]}`, `"a"`, "1u8", `"b"`, "[2u8, 3u8]", "2u8", "3u8"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWalkStops(t *testing.T) {
	n := 0
	Walk(Seq(FromU8(1), FromU8(2), FromU8(3)), func(*Object) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("visited %d nodes, want 2", n)
	}
}
