package store

import "container/list"

// ListPopResult is what a fulfilled BLPOP waiter receives: the key that
// produced data and the popped element.
type ListPopResult struct {
	Key   string
	Value []byte
}

// listWaiter is one client parked in a per-key FIFO queue via BLPOP.
type listWaiter struct {
	clientID uint64
	ch       chan ListPopResult
}

// StreamReadResult is what XREAD(-attempt) returns per stream key that
// produced at least one entry.
type StreamReadResult struct {
	Key     string
	Entries []StreamEntry
}

// streamWaiter is one client parked via XREAD BLOCK, interested in
// multiple stream keys each with its own "after this id" cursor.
type streamWaiter struct {
	clientID uint64
	after    map[string]StreamID
	ch       chan []StreamReadResult
}

// RegisterBLPOP enqueues a waiter for key under clientID and returns the
// channel it will receive on. Only called after BLPopAttempt has
// already failed for key. The channel is unbuffered: a send only
// succeeds while the connection goroutine is actually parked receiving
// on it, which is what lets notifyListWaiters tell a live waiter from an
// abandoned one.
func (e *Engine) RegisterBLPOP(key string, clientID uint64) chan ListPopResult {
	ch := make(chan ListPopResult)
	q, ok := e.listWaiters[key]
	if !ok {
		q = list.New()
		e.listWaiters[key] = q
	}
	q.PushBack(&listWaiter{clientID: clientID, ch: ch})
	return ch
}

// CleanupBLPOP removes the waiter identified by (key, clientID), if still
// present. Safe to call when already absent (e.g. already fulfilled).
func (e *Engine) CleanupBLPOP(key string, clientID uint64) {
	q, ok := e.listWaiters[key]
	if !ok {
		return
	}
	for el := q.Front(); el != nil; el = el.Next() {
		if el.Value.(*listWaiter).clientID == clientID {
			q.Remove(el)
			break
		}
	}
	if q.Len() == 0 {
		delete(e.listWaiters, key)
	}
}

// notifyListWaiters is called after any push that leaves key non-empty.
// It pops the head waiter (if any), removes one element from the list's
// head, and delivers it. If the waiter's channel send fails because the
// waiter already timed out, the popped element is discarded — not
// returned to the list — and the next waiter in FIFO order is tried.
// This matches the "each successful engine-side pop fulfills the first
// living waiter or no one" policy of §4.3.
func (e *Engine) notifyListWaiters(key string) {
	q, ok := e.listWaiters[key]
	if !ok {
		return
	}
	for q.Len() > 0 {
		lv, hasData := e.lists[key]
		if !hasData || len(lv.items) == 0 {
			return
		}
		front := q.Front()
		w := front.Value.(*listWaiter)
		q.Remove(front)
		if q.Len() == 0 {
			delete(e.listWaiters, key)
		}

		v := lv.items[0]
		lv.items = lv.items[1:]

		select {
		case w.ch <- ListPopResult{Key: key, Value: v}:
			return
		default:
			// waiter already gone: discard v and try the next waiter
		}
	}
}

// RegisterXREADBlock enqueues a waiter interested in the given streams,
// each with its own "after" cursor, and returns the channel it will
// receive on.
func (e *Engine) RegisterXREADBlock(clientID uint64, after map[string]StreamID) chan []StreamReadResult {
	ch := make(chan []StreamReadResult)
	e.streamWaiters[clientID] = &streamWaiter{clientID: clientID, after: after, ch: ch}
	return ch
}

// CleanupXREAD removes the stream waiter for clientID, if still present.
func (e *Engine) CleanupXREAD(clientID uint64) {
	delete(e.streamWaiters, clientID)
}

// notifyStreamWaiters is called after XAdd appends to key. Every waiter
// interested in key is re-attempted; a waiter that now has data for any
// of its streams is delivered to and removed. ch is unbuffered, so a
// delivery that finds no one parked on the receive (the waiter already
// timed out) takes the default branch instead of succeeding silently.
func (e *Engine) notifyStreamWaiters(key string) {
	for id, w := range e.streamWaiters {
		after, interested := w.after[key]
		if !interested {
			continue
		}
		entries, err := e.XReadAttempt(key, after)
		if err != nil || len(entries) == 0 {
			continue
		}
		select {
		case w.ch <- []StreamReadResult{{Key: key, Entries: entries}}:
			delete(e.streamWaiters, id)
		default:
			// waiter already timed out; its own Cleanup message will
			// remove it, or has already.
		}
	}
}
