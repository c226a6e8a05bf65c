package resp

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []Value{
		SimpleStringValue("PONG"),
		ErrorValue("ERR wrong number of arguments"),
		IntegerValue(42),
		IntegerValue(-7),
		BulkStringValue("hello"),
		BulkStringValue(""),
		NullBulk(),
		ArrayValue([]Value{BulkStringValue("GET"), BulkStringValue("k")}),
		ArrayValue(nil),
		NullArray(),
	}

	for _, v := range cases {
		wire := EncodeBytes(v)
		got, n, err := Decode(wire)
		if err != nil {
			t.Fatalf("decode(%q): %v", wire, err)
		}
		if n != len(wire) {
			t.Fatalf("decode(%q): consumed %d, want %d", wire, n, len(wire))
		}
		if !valuesEqual(got, v) {
			t.Fatalf("decode(%q) = %+v, want %+v", wire, got, v)
		}
	}
}

func TestDecodeIncompletePrefixesNeverAdvance(t *testing.T) {
	v := ArrayValue([]Value{BulkStringValue("SET"), BulkStringValue("k"), BulkStringValue("v")})
	full := EncodeBytes(v)

	for i := 0; i < len(full); i++ {
		_, n, err := Decode(full[:i])
		if err == nil {
			t.Fatalf("prefix length %d: unexpectedly succeeded, consumed %d", i, n)
		}
		if err != ErrIncomplete && err != ErrInvalidFormat {
			t.Fatalf("prefix length %d: got %v", i, err)
		}
	}

	got, n, err := Decode(full)
	if err != nil || n != len(full) {
		t.Fatalf("full frame: got value=%+v n=%d err=%v", got, n, err)
	}
}

func TestPipelining(t *testing.T) {
	v1 := SimpleStringValue("PONG")
	v2 := IntegerValue(2)
	v3 := BulkStringValue("x")

	var buf []byte
	buf = Encode(buf, v1)
	buf = Encode(buf, v2)
	buf = Encode(buf, v3)

	want := []Value{v1, v2, v3}
	var got []Value
	for len(buf) > 0 {
		v, n, err := Decode(buf)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, v)
		buf = buf[n:]
	}

	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if !valuesEqual(got[i], want[i]) {
			t.Fatalf("value %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeBulkLengthMismatchIsInvalid(t *testing.T) {
	// declares length 5 but supplies a short 3-byte payload, so the bytes
	// where the trailing CRLF belongs are garbage
	_, _, err := Decode([]byte("$5\r\nabc\r\nXY"))
	if err != ErrInvalidFormat {
		t.Fatalf("got %v, want ErrInvalidFormat", err)
	}
}

func TestDecodeMalformedArrayCount(t *testing.T) {
	_, _, err := Decode([]byte("*nope\r\n"))
	if err != ErrInvalidFormat {
		t.Fatalf("got %v, want ErrInvalidFormat", err)
	}
}

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind || a.Null != b.Null {
		return false
	}
	switch a.Kind {
	case SimpleString, SimpleError:
		return a.Str == b.Str
	case Integer:
		return a.Int == b.Int
	case BulkString:
		return bytes.Equal(a.Bulk, b.Bulk)
	case Array:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !valuesEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}
