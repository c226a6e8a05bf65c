// Package clientid hands out process-wide, monotonically increasing
// client identifiers used to track BLPOP and XREAD BLOCK waiters.
// Wrap-around is not in scope.
package clientid

import "sync/atomic"

var counter uint64

// Next returns a fresh client id, strictly greater than every id
// previously returned by this process.
func Next() uint64 {
	return atomic.AddUint64(&counter, 1)
}
