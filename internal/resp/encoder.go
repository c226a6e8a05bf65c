package resp

import "strconv"

// Encode appends the wire representation of v to dst and returns the
// extended slice. It is a total function: every Value constructible via
// the constructors in value.go has a defined encoding, and Encode never
// fails.
func Encode(dst []byte, v Value) []byte {
	switch v.Kind {
	case SimpleString:
		dst = append(dst, byte(SimpleString))
		dst = append(dst, v.Str...)
		return append(dst, '\r', '\n')

	case SimpleError:
		dst = append(dst, byte(SimpleError))
		dst = append(dst, v.Str...)
		return append(dst, '\r', '\n')

	case Integer:
		dst = append(dst, byte(Integer))
		dst = strconv.AppendInt(dst, v.Int, 10)
		return append(dst, '\r', '\n')

	case BulkString:
		if v.Null {
			return append(dst, '$', '-', '1', '\r', '\n')
		}
		dst = append(dst, byte(BulkString))
		dst = strconv.AppendInt(dst, int64(len(v.Bulk)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, v.Bulk...)
		return append(dst, '\r', '\n')

	case Array:
		if v.Null {
			return append(dst, '*', '-', '1', '\r', '\n')
		}
		dst = append(dst, byte(Array))
		dst = strconv.AppendInt(dst, int64(len(v.Elems)), 10)
		dst = append(dst, '\r', '\n')
		for _, elem := range v.Elems {
			dst = Encode(dst, elem)
		}
		return dst

	default:
		return dst
	}
}

// EncodeBytes is a convenience wrapper around Encode that allocates a
// fresh slice.
func EncodeBytes(v Value) []byte {
	return Encode(nil, v)
}
