package store

import "errors"

// Engine-level errors, translated to RESP replies by the command layer.
var (
	// ErrKeyNotFound is returned by GET/LPOP when the key is absent.
	ErrKeyNotFound = errors.New("key not found")
	// ErrKeyExpired is returned by GET when the stored value's expiry has
	// passed; distinguished from ErrKeyNotFound per §4.2, though both
	// surface as "not found" to the command layer.
	ErrKeyExpired = errors.New("key expired")
	// ErrWrongType is returned when a key holds a value of a different
	// kind than the operation requires.
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	// ErrTime is returned by SET if the wall clock cannot be read (never
	// happens with the real clock; reachable only with an injected one).
	ErrTime = errors.New("clock unavailable")

	// ErrStreamIDNotPositive is returned by XADD when the resolved id is
	// less than (0,1).
	ErrStreamIDNotPositive = errors.New("ERR The ID specified in XADD must be greater than 0-0")
	// ErrStreamIDTooSmall is returned by XADD when the resolved id is not
	// strictly greater than the stream's current top id.
	ErrStreamIDTooSmall = errors.New("ERR The ID specified in XADD is equal or smaller than the target stream top item")
	// ErrStreamIDInvalid is returned when an id hint of the form
	// (absent ms, given seq) is supplied — explicitly rejected by §4.2.
	ErrStreamIDInvalid = errors.New("ERR Invalid stream ID specified as stream command argument")
)
