package store

import (
	"testing"
	"time"
)

func TestXAddExplicitIDMonotonic(t *testing.T) {
	e := New()
	id, err := e.XAdd("s", IDHint{MsGiven: true, Ms: 0, SeqGiven: true, Seq: 1}, map[string][]byte{"f": []byte("v")})
	if err != nil {
		t.Fatalf("XAdd: %v", err)
	}
	if id != (StreamID{0, 1}) {
		t.Fatalf("id = %+v", id)
	}

	_, err = e.XAdd("s", IDHint{MsGiven: true, Ms: 0, SeqGiven: true, Seq: 1}, map[string][]byte{"f": []byte("v")})
	if err != ErrStreamIDTooSmall {
		t.Fatalf("got %v, want ErrStreamIDTooSmall", err)
	}
}

func TestXAddZeroZeroRejected(t *testing.T) {
	e := New()
	_, err := e.XAdd("s", IDHint{MsGiven: true, Ms: 0, SeqGiven: true, Seq: 0}, nil)
	if err != ErrStreamIDNotPositive {
		t.Fatalf("got %v, want ErrStreamIDNotPositive", err)
	}
}

func TestXAddSeqAutoIncrementWithinSameMs(t *testing.T) {
	e := New()
	e.XAdd("s", IDHint{MsGiven: true, Ms: 5, SeqGiven: true, Seq: 0}, nil)
	id, err := e.XAdd("s", IDHint{MsGiven: true, Ms: 5}, nil)
	if err != nil {
		t.Fatalf("XAdd: %v", err)
	}
	if id != (StreamID{5, 1}) {
		t.Fatalf("id = %+v, want 5-1", id)
	}
}

func TestXAddSeqInvalidHintRejected(t *testing.T) {
	e := New()
	_, err := e.XAdd("s", IDHint{SeqGiven: true, Seq: 4}, nil)
	if err != ErrStreamIDInvalid {
		t.Fatalf("got %v, want ErrStreamIDInvalid", err)
	}
}

func TestXAddFullyAutoUsesWallClock(t *testing.T) {
	now := time.UnixMilli(12345)
	e := New()
	e.now = func() time.Time { return now }

	id, err := e.XAdd("s", IDHint{}, nil)
	if err != nil {
		t.Fatalf("XAdd: %v", err)
	}
	if id != (StreamID{12345, 0}) {
		t.Fatalf("id = %+v", id)
	}

	id2, err := e.XAdd("s", IDHint{}, nil)
	if err != nil {
		t.Fatalf("XAdd: %v", err)
	}
	if id2 != (StreamID{12345, 1}) {
		t.Fatalf("id2 = %+v, want 12345-1", id2)
	}
}

func TestXRangeInclusive(t *testing.T) {
	e := New()
	ids := []StreamID{}
	for i := uint64(1); i <= 5; i++ {
		id, err := e.XAdd("s", IDHint{MsGiven: true, Ms: i, SeqGiven: true, Seq: 0}, map[string][]byte{"n": []byte{byte(i)}})
		if err != nil {
			t.Fatalf("XAdd: %v", err)
		}
		ids = append(ids, id)
	}

	start := ids[1]
	end := ids[3]
	got, err := e.XRange("s", &start, &end)
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].ID != ids[1] || got[2].ID != ids[3] {
		t.Fatalf("unexpected range bounds: %+v", got)
	}
}

func TestXRangeUnbounded(t *testing.T) {
	e := New()
	e.XAdd("s", IDHint{MsGiven: true, Ms: 1, SeqGiven: true, Seq: 0}, nil)
	e.XAdd("s", IDHint{MsGiven: true, Ms: 2, SeqGiven: true, Seq: 0}, nil)

	got, err := e.XRange("s", nil, nil)
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
}

func TestXReadAttemptStrictlyGreater(t *testing.T) {
	e := New()
	id1, _ := e.XAdd("s", IDHint{MsGiven: true, Ms: 1, SeqGiven: true, Seq: 0}, nil)
	id2, _ := e.XAdd("s", IDHint{MsGiven: true, Ms: 2, SeqGiven: true, Seq: 0}, nil)

	got, err := e.XReadAttempt("s", id1)
	if err != nil {
		t.Fatalf("XReadAttempt: %v", err)
	}
	if len(got) != 1 || got[0].ID != id2 {
		t.Fatalf("got %+v", got)
	}
}

func TestStreamMonotonicityUnderMixedIDs(t *testing.T) {
	e := New()
	var last StreamID
	var ok bool
	for i := 0; i < 50; i++ {
		hint := IDHint{}
		if i%2 == 0 {
			hint = IDHint{MsGiven: true, Ms: uint64(i), SeqGiven: true, Seq: 0}
		}
		id, err := e.XAdd("s", hint, nil)
		if err != nil {
			continue
		}
		if ok && !last.Less(id) {
			t.Fatalf("non-monotonic: %+v then %+v", last, id)
		}
		last, ok = id, true
	}
}
