package store

import (
	"testing"
	"time"
)

func TestSetGetRoundTrip(t *testing.T) {
	e := New()
	if err := e.Set("k", []byte("v"), 0, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := e.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("Get = %q, want %q", got, "v")
	}
	if e.Type("k") != KindString {
		t.Fatalf("Type = %v, want string", e.Type("k"))
	}
}

func TestGetMissing(t *testing.T) {
	e := New()
	if _, err := e.Get("nope"); err != ErrKeyNotFound {
		t.Fatalf("got %v, want ErrKeyNotFound", err)
	}
}

func TestSetExpiryIsHonoredLazily(t *testing.T) {
	now := time.Unix(1000, 0)
	e := New()
	e.now = func() time.Time { return now }

	if err := e.Set("k", []byte("v"), 50*time.Millisecond, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := e.Get("k"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	now = now.Add(100 * time.Millisecond)
	if _, err := e.Get("k"); err != ErrKeyExpired {
		t.Fatalf("got %v, want ErrKeyExpired", err)
	}
	if e.Type("k") != KindNone {
		t.Fatalf("expired key left a type tag: %v", e.Type("k"))
	}
}

func TestLPushOrderIsReversed(t *testing.T) {
	e := New()
	n, err := e.LPush("L", [][]byte{[]byte("a"), []byte("b"), []byte("c")})
	if err != nil {
		t.Fatalf("LPush: %v", err)
	}
	if n != 3 {
		t.Fatalf("len = %d, want 3", n)
	}
	got, err := e.LRange("L", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	want := []string{"c", "b", "a"}
	assertStrings(t, got, want)
}

func TestLRangeNormalization(t *testing.T) {
	e := New()
	e.RPush("L", [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d"), []byte("e")})

	cases := []struct {
		start, end int
		want       []string
	}{
		{0, -1, []string{"a", "b", "c", "d", "e"}},
		{-2, -1, []string{"d", "e"}},
		{1, 2, []string{"b", "c"}},
		{3, 1, nil},
		{10, 20, nil},
		{-100, 2, []string{"a", "b", "c"}},
	}
	for _, c := range cases {
		got, err := e.LRange("L", c.start, c.end)
		if err != nil {
			t.Fatalf("LRange(%d,%d): %v", c.start, c.end, err)
		}
		assertStrings(t, got, c.want)
	}
}

func TestLPopCount(t *testing.T) {
	e := New()
	e.RPush("L", [][]byte{[]byte("a"), []byte("b"), []byte("c")})

	got, err := e.LPop("L", 2)
	if err != nil {
		t.Fatalf("LPop: %v", err)
	}
	assertStrings(t, got, []string{"a", "b"})

	got, err = e.LPop("L", 10)
	if err != nil {
		t.Fatalf("LPop: %v", err)
	}
	assertStrings(t, got, []string{"c"})

	if _, err := e.LPop("L", 1); err != ErrKeyNotFound {
		t.Fatalf("got %v, want ErrKeyNotFound", err)
	}
}

func TestWrongType(t *testing.T) {
	e := New()
	e.Set("k", []byte("v"), 0, false)
	if _, err := e.RPush("k", [][]byte{[]byte("x")}); err != ErrWrongType {
		t.Fatalf("got %v, want ErrWrongType", err)
	}
}

func TestTypeTagInvariant(t *testing.T) {
	e := New()
	e.Set("k", []byte("v"), 0, false)
	if e.Type("k") != KindString {
		t.Fatalf("Type = %v", e.Type("k"))
	}
	e.RPush("other", [][]byte{[]byte("x")})
	if e.Type("other") != KindList {
		t.Fatalf("Type = %v", e.Type("other"))
	}
	if e.Type("absent") != KindNone {
		t.Fatalf("Type(absent) = %v, want none", e.Type("absent"))
	}
}

func assertStrings(t *testing.T, got [][]byte, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Fatalf("element %d = %q, want %q", i, got[i], want[i])
		}
	}
}
