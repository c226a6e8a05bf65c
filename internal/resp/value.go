// Package resp implements the RESP (REdis Serialization Protocol) wire
// format: a closed tagged-union value type, an incremental decoder that
// consumes bytes from a growable buffer, and an encoder that formats
// values back into wire bytes.
package resp

// Kind identifies which RESP value shape a Value holds. Only the fields
// documented for a Kind are meaningful; the rest are zero.
type Kind byte

const (
	// Simple string: "+<data>\r\n". Str holds the data.
	SimpleString Kind = '+'
	// Simple error: "-<message>\r\n". Str holds the message.
	SimpleError Kind = '-'
	// Integer: ":<decimal>\r\n". Int holds the value.
	Integer Kind = ':'
	// Bulk string: "$<len>\r\n<len bytes>\r\n", or the null bulk string
	// "$-1\r\n" when Null is true. Bulk holds the data.
	BulkString Kind = '$'
	// Array: "*<n>\r\n<elements>", or the null array "*-1\r\n" when Null
	// is true. Elems holds the elements.
	Array Kind = '*'
)

// Value is a parsed (or to-be-encoded) RESP value. Exactly one of
// Str/Int/Bulk/Elems is meaningful, selected by Kind; Null distinguishes
// the null bulk string / null array from their non-null counterparts.
type Value struct {
	Kind  Kind
	Str   string  // SimpleString, SimpleError
	Int   int64   // Integer
	Bulk  []byte  // BulkString (nil + Null=true means "$-1\r\n")
	Elems []Value // Array (nil + Null=true means "*-1\r\n")
	Null  bool
}

// SimpleStringValue builds a "+<s>\r\n" value.
func SimpleStringValue(s string) Value { return Value{Kind: SimpleString, Str: s} }

// ErrorValue builds a "-<msg>\r\n" value.
func ErrorValue(msg string) Value { return Value{Kind: SimpleError, Str: msg} }

// IntegerValue builds a ":<n>\r\n" value.
func IntegerValue(n int64) Value { return Value{Kind: Integer, Int: n} }

// BulkValue builds a "$<len>\r\n<data>\r\n" value.
func BulkValue(b []byte) Value { return Value{Kind: BulkString, Bulk: b} }

// BulkStringValue is a convenience wrapper for BulkValue over a string.
func BulkStringValue(s string) Value { return Value{Kind: BulkString, Bulk: []byte(s)} }

// NullBulk builds the null bulk string, "$-1\r\n".
func NullBulk() Value { return Value{Kind: BulkString, Null: true} }

// ArrayValue builds a "*<n>\r\n..." value.
func ArrayValue(elems []Value) Value { return Value{Kind: Array, Elems: elems} }

// NullArray builds the null array, "*-1\r\n".
func NullArray() Value { return Value{Kind: Array, Null: true} }

// IsNull reports whether v is the null bulk string or the null array.
func (v Value) IsNull() bool {
	return (v.Kind == BulkString || v.Kind == Array) && v.Null
}
