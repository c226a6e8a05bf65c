package store

// IDHint is the parsed "ms-seq" id argument to XADD, where either half
// may be the wildcard `*`. MsGiven/SeqGiven distinguish "absent" from an
// explicit 0, per the resolution table in §4.2.
type IDHint struct {
	MsGiven  bool
	Ms       uint64
	SeqGiven bool
	Seq      uint64
}

func (e *Engine) streamFor(key string) *streamValue {
	sv, ok := e.streams[key]
	if !ok {
		sv = newStreamValue()
		e.streams[key] = sv
		e.types[key] = KindStream
	}
	return sv
}

// resolveID implements the XADD id-assignment table of §4.2.
func (e *Engine) resolveID(sv *streamValue, hint IDHint) (StreamID, error) {
	switch {
	case hint.MsGiven && hint.SeqGiven:
		return StreamID{hint.Ms, hint.Seq}, nil

	case hint.MsGiven && !hint.SeqGiven:
		if sv.hasTop && hint.Ms == sv.top.Ms {
			return StreamID{hint.Ms, sv.top.Seq + 1}, nil
		}
		if hint.Ms == 0 {
			return StreamID{0, 1}, nil
		}
		return StreamID{hint.Ms, 0}, nil

	case !hint.MsGiven && !hint.SeqGiven:
		now := uint64(e.now().UnixMilli())
		last := StreamID{}
		if sv.hasTop {
			last = sv.top
		}
		if now < last.Ms {
			now = last.Ms
		}
		if sv.hasTop && now == last.Ms {
			return StreamID{now, last.Seq + 1}, nil
		}
		if now == 0 {
			return StreamID{0, 1}, nil
		}
		return StreamID{now, 0}, nil

	default: // !MsGiven && SeqGiven
		return StreamID{}, ErrStreamIDInvalid
	}
}

// XAdd resolves the new entry's id per hint, validates it against the
// stream's invariants, and appends the fields.
func (e *Engine) XAdd(key string, hint IDHint, fields map[string][]byte) (StreamID, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindStream {
		return StreamID{}, ErrWrongType
	}
	sv := e.streamFor(key)

	id, err := e.resolveID(sv, hint)
	if err != nil {
		return StreamID{}, err
	}
	if id.Less(StreamID{0, 1}) {
		return StreamID{}, ErrStreamIDNotPositive
	}
	if sv.hasTop && id.LessEq(sv.top) {
		return StreamID{}, ErrStreamIDTooSmall
	}

	sv.tree.ReplaceOrInsert(StreamEntry{ID: id, Fields: fields})
	sv.top = id
	sv.hasTop = true
	e.notifyStreamWaiters(key)
	return id, nil
}

// XRange returns the inclusive range [start,end] of stream entries at
// key, in ascending id order. A nil bound is unbounded on that side.
func (e *Engine) XRange(key string, start, end *StreamID) ([]StreamEntry, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindStream {
		return nil, ErrWrongType
	}
	sv, ok := e.streams[key]
	if !ok {
		return nil, nil
	}

	lo := MinStreamID
	if start != nil {
		lo = *start
	}

	var out []StreamEntry
	collect := func(entry StreamEntry) bool {
		out = append(out, entry)
		return true
	}
	if end != nil {
		sv.tree.AscendRange(lo, end.Next(), collect)
	} else {
		sv.tree.AscendGreaterOrEqual(lo, collect)
	}
	return out, nil
}

// XReadAttempt returns all entries of the stream at key strictly greater
// than afterID, without blocking.
func (e *Engine) XReadAttempt(key string, afterID StreamID) ([]StreamEntry, error) {
	if e.Type(key) != KindNone && e.Type(key) != KindStream {
		return nil, ErrWrongType
	}
	sv, ok := e.streams[key]
	if !ok {
		return nil, nil
	}
	var out []StreamEntry
	sv.tree.AscendGreaterOrEqual(afterID.Next(), func(entry StreamEntry) bool {
		out = append(out, entry)
		return true
	})
	return out, nil
}

// StreamTop returns the current top id of the stream at key, if any.
func (e *Engine) StreamTop(key string) (StreamID, bool) {
	sv, ok := e.streams[key]
	if !ok {
		return StreamID{}, false
	}
	return sv.top, sv.hasTop
}
