package store

import (
	"time"

	"github.com/google/btree"
)

// Kind tags which of the three value maps owns a given key, mirroring the
// teacher's Item.Type discriminator but kept as a distinct tag map rather
// than folded into the value itself (§3 invariant 1 permits either
// shape).
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindList
	KindStream
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindStream:
		return "stream"
	default:
		return "none"
	}
}

// stringValue is a stored string key with an optional absolute expiry.
type stringValue struct {
	data      []byte
	expiresAt time.Time
	hasExpiry bool
}

func (s *stringValue) expired(now time.Time) bool {
	return s.hasExpiry && !s.expiresAt.After(now)
}

// listValue is an ordered sequence of byte strings.
type listValue struct {
	items [][]byte
}

// StreamEntry is one (id, fields) record of a stream, returned by range
// and read queries.
type StreamEntry struct {
	ID     StreamID
	Fields map[string][]byte
}

// streamValue is the append-only ordered store backing one stream key.
// Ordering and range queries are delegated to a google/btree ordered map
// keyed by StreamID, satisfying the O(log n) range-query requirement
// without a hand-rolled balanced tree.
type streamValue struct {
	tree   *btree.BTreeG[StreamEntry]
	top    StreamID
	hasTop bool
}

func newStreamValue() *streamValue {
	return &streamValue{
		tree: btree.NewG(32, func(a, b StreamEntry) bool {
			return a.ID.Less(b.ID)
		}),
	}
}
