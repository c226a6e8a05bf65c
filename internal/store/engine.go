// Package store implements the authoritative in-memory data engine: the
// three value maps (strings, lists, streams), the parallel type-tag map,
// and the blocking-client registries for BLPOP and XREAD BLOCK. An Engine
// is single-owner — per §5 of the design, it is mutated exclusively by
// the actor goroutine in internal/actor and performs no I/O and no
// suspension of its own, so it carries no internal locking (contrast the
// teacher's database.Database, which guards the analogous maps with a
// sync.RWMutex because every connection goroutine there touches it
// directly).
package store

import (
	"container/list"
	"time"
)

// Engine is the process-wide key/value store plus blocking registries.
type Engine struct {
	strings map[string]*stringValue
	lists   map[string]*listValue
	streams map[string]*streamValue
	types   map[string]Kind

	listWaiters   map[string]*list.List // key -> FIFO of *listWaiter
	streamWaiters map[uint64]*streamWaiter

	now func() time.Time
}

// New returns an empty Engine using the real wall clock.
func New() *Engine {
	return &Engine{
		strings:       make(map[string]*stringValue),
		lists:         make(map[string]*listValue),
		streams:       make(map[string]*streamValue),
		types:         make(map[string]Kind),
		listWaiters:   make(map[string]*list.List),
		streamWaiters: make(map[uint64]*streamWaiter),
		now:           time.Now,
	}
}

// Type reports which kind of value occupies key, or KindNone if absent.
func (e *Engine) Type(key string) Kind {
	return e.types[key]
}

func (e *Engine) clearOtherKinds(key string, keep Kind) {
	if keep != KindString {
		delete(e.strings, key)
	}
	if keep != KindList {
		delete(e.lists, key)
	}
	if keep != KindStream {
		delete(e.streams, key)
	}
}

// Set stores value under key, replacing whatever was there. If hasExpiry
// is true, expiry is absolute: e.now() + ttl.
func (e *Engine) Set(key string, value []byte, ttl time.Duration, hasExpiry bool) error {
	sv := &stringValue{data: value}
	if hasExpiry {
		now := e.now()
		if now.IsZero() {
			return ErrTime
		}
		sv.hasExpiry = true
		sv.expiresAt = now.Add(ttl)
	}
	e.clearOtherKinds(key, KindString)
	e.strings[key] = sv
	e.types[key] = KindString
	return nil
}

// Get returns the bytes stored at key, ErrKeyNotFound if absent, or
// ErrKeyExpired if present but past its expiry (lazily purged here).
func (e *Engine) Get(key string) ([]byte, error) {
	sv, ok := e.strings[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	if sv.expired(e.now()) {
		delete(e.strings, key)
		delete(e.types, key)
		return nil, ErrKeyExpired
	}
	return sv.data, nil
}

func (e *Engine) listFor(key string) *listValue {
	lv, ok := e.lists[key]
	if !ok {
		lv = &listValue{}
		e.lists[key] = lv
		e.types[key] = KindList
	}
	return lv
}

// RPush appends values, in order, to the list at key and returns the new
// length. Waiters registered on key are notified after the mutation.
func (e *Engine) RPush(key string, values [][]byte) (int, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindList {
		return 0, ErrWrongType
	}
	lv := e.listFor(key)
	lv.items = append(lv.items, values...)
	n := len(lv.items)
	e.notifyListWaiters(key)
	return n, nil
}

// LPush prepends values to the list at key such that the final
// left-to-right order of the newly inserted values is the reverse of the
// input argument order, and returns the new length.
func (e *Engine) LPush(key string, values [][]byte) (int, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindList {
		return 0, ErrWrongType
	}
	lv := e.listFor(key)
	prefix := make([][]byte, len(values))
	for i, v := range values {
		prefix[len(values)-1-i] = v
	}
	lv.items = append(prefix, lv.items...)
	n := len(lv.items)
	e.notifyListWaiters(key)
	return n, nil
}

// LRange returns the inclusive [start,end] slice of the list at key, with
// negative indices counted from the end and out-of-range bounds clamped;
// see §8 "List index normalization".
func (e *Engine) LRange(key string, start, end int) ([][]byte, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindList {
		return nil, ErrWrongType
	}
	lv, ok := e.lists[key]
	if !ok {
		return nil, nil
	}
	n := len(lv.items)
	start, end = normalizeRange(start, end, n)
	if start > end || start >= n || n == 0 {
		return nil, nil
	}
	out := make([][]byte, end-start+1)
	copy(out, lv.items[start:end+1])
	return out, nil
}

func normalizeRange(start, end, n int) (int, int) {
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	return start, end
}

// LLen returns the length of the list at key, or 0 if absent.
func (e *Engine) LLen(key string) (int, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindList {
		return 0, ErrWrongType
	}
	lv, ok := e.lists[key]
	if !ok {
		return 0, nil
	}
	return len(lv.items), nil
}

// LPop removes and returns up to count elements from the front of the
// list at key. ErrKeyNotFound is returned when the list is empty or
// absent.
func (e *Engine) LPop(key string, count int) ([][]byte, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindList {
		return nil, ErrWrongType
	}
	lv, ok := e.lists[key]
	if !ok || len(lv.items) == 0 {
		return nil, ErrKeyNotFound
	}
	if count > len(lv.items) {
		count = len(lv.items)
	}
	out := lv.items[:count]
	lv.items = lv.items[count:]
	return out, nil
}

// BLPopAttempt returns the first element of the list at key without
// blocking, removing it on success.
func (e *Engine) BLPopAttempt(key string) ([]byte, bool) {
	lv, ok := e.lists[key]
	if !ok || len(lv.items) == 0 {
		return nil, false
	}
	v := lv.items[0]
	lv.items = lv.items[1:]
	return v, true
}
