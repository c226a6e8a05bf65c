package command

import (
	"strconv"
	"strings"
	"time"

	"github.com/dkazak/respkv/internal/resp"
	"github.com/dkazak/respkv/internal/store"
)

// parseAddID parses the "ms-seq" id hint of XADD, where either half may
// be `*`. A missing dash, or a non-decimal non-`*` half, is InvalidInput
// per §4.4.
func parseAddID(s string) (store.IDHint, error) {
	dash := strings.IndexByte(s, '-')
	if dash < 0 {
		return store.IDHint{}, errInvalidInput
	}
	msPart, seqPart := s[:dash], s[dash+1:]

	hint := store.IDHint{}
	if msPart == "*" {
		if seqPart != "*" {
			return store.IDHint{}, errInvalidInput
		}
		return hint, nil
	}
	ms, err := strconv.ParseUint(msPart, 10, 64)
	if err != nil {
		return store.IDHint{}, errInvalidInput
	}
	hint.MsGiven = true
	hint.Ms = ms

	if seqPart == "*" {
		return hint, nil
	}
	seq, err := strconv.ParseUint(seqPart, 10, 64)
	if err != nil {
		return store.IDHint{}, errInvalidInput
	}
	hint.SeqGiven = true
	hint.Seq = seq
	return hint, nil
}

var errInvalidInput = &invalidInputError{}

type invalidInputError struct{}

func (*invalidInputError) Error() string { return "ERR Invalid stream ID specified as stream command argument" }

func cmdXAdd(e *store.Engine, args []resp.Value) Result {
	if len(args) < 4 || len(args)%2 != 0 {
		return errResult("ERR wrong number of arguments for 'xadd' command")
	}
	key := string(bulkOf(args[0]))
	hint, err := parseAddID(string(bulkOf(args[1])))
	if err != nil {
		return errResult(err.Error())
	}

	fields := make(map[string][]byte, (len(args)-2)/2)
	for i := 2; i+1 < len(args); i += 2 {
		fields[string(bulkOf(args[i]))] = bulkOf(args[i+1])
	}

	id, err := e.XAdd(key, hint, fields)
	if err != nil {
		return errResult(err.Error())
	}
	return immediate(resp.BulkStringValue(formatStreamID(id)))
}

func formatStreamID(id store.StreamID) string {
	return strconv.FormatUint(id.Ms, 10) + "-" + strconv.FormatUint(id.Seq, 10)
}

// parseRangeBound parses an XRANGE bound: "-" (lowest), "+" (unbounded
// high), "ms" (seq defaults per side), or "ms-seq". nil, nil means
// unbounded.
func parseRangeBound(s string, isEnd bool) (*store.StreamID, error) {
	switch s {
	case "-":
		id := store.MinStreamID
		return &id, nil
	case "+":
		return nil, nil
	}
	dash := strings.IndexByte(s, '-')
	if dash < 0 {
		ms, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errInvalidInput
		}
		seq := uint64(0)
		if isEnd {
			seq = ^uint64(0)
		}
		id := store.StreamID{Ms: ms, Seq: seq}
		return &id, nil
	}
	ms, err1 := strconv.ParseUint(s[:dash], 10, 64)
	seq, err2 := strconv.ParseUint(s[dash+1:], 10, 64)
	if err1 != nil || err2 != nil {
		return nil, errInvalidInput
	}
	id := store.StreamID{Ms: ms, Seq: seq}
	return &id, nil
}

func cmdXRange(e *store.Engine, args []resp.Value) Result {
	if len(args) != 3 {
		return errResult("ERR wrong number of arguments for 'xrange' command")
	}
	start, err := parseRangeBound(string(bulkOf(args[1])), false)
	if err != nil {
		return errResult(err.Error())
	}
	end, err := parseRangeBound(string(bulkOf(args[2])), true)
	if err != nil {
		return errResult(err.Error())
	}

	entries, err := e.XRange(string(bulkOf(args[0])), start, end)
	if err != nil {
		return errResult(err.Error())
	}
	return immediate(resp.ArrayValue(entriesToRESP(entries)))
}

func entriesToRESP(entries []store.StreamEntry) []resp.Value {
	out := make([]resp.Value, len(entries))
	for i, ent := range entries {
		out[i] = resp.ArrayValue([]resp.Value{
			resp.BulkStringValue(formatStreamID(ent.ID)),
			fieldsToRESP(ent.Fields),
		})
	}
	return out
}

func fieldsToRESP(fields map[string][]byte) resp.Value {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	// deterministic order for reply bytes
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	elems := make([]resp.Value, 0, len(names)*2)
	for _, name := range names {
		elems = append(elems, resp.BulkStringValue(name), resp.BulkValue(fields[name]))
	}
	return resp.ArrayValue(elems)
}

// cmdXRead implements "XREAD [BLOCK <ms>] STREAMS key [key...] id
// [id...]".
func cmdXRead(e *store.Engine, args []resp.Value) Result {
	i := 0
	blockMs := int64(-1)
	if i < len(args) && strings.EqualFold(string(bulkOf(args[i])), "BLOCK") {
		if i+1 >= len(args) {
			return errResult("ERR syntax error")
		}
		ms, err := strconv.ParseInt(string(bulkOf(args[i+1])), 10, 64)
		if err != nil || ms < 0 {
			return errResult("ERR timeout is not an integer or out of range")
		}
		blockMs = ms
		i += 2
	}
	if i >= len(args) || !strings.EqualFold(string(bulkOf(args[i])), "STREAMS") {
		return errResult("ERR syntax error")
	}
	i++
	rest := args[i:]
	if len(rest) == 0 || len(rest)%2 != 0 {
		return errResult("ERR Unbalanced XREAD list of streams: for each stream key an ID or '$' must be specified.")
	}
	n := len(rest) / 2
	keys := rest[:n]
	ids := rest[n:]

	after := make(map[string]store.StreamID, n)
	for k := 0; k < n; k++ {
		key := string(bulkOf(keys[k]))
		idStr := string(bulkOf(ids[k]))
		if idStr == "$" {
			top, ok := e.StreamTop(key)
			if !ok {
				top = store.MinStreamID
			}
			after[key] = top
			continue
		}
		id, err := parseRangeBound(idStr, false)
		if err != nil || id == nil {
			return errResult("ERR Invalid stream ID specified as stream command argument")
		}
		after[key] = *id
	}

	var results []store.StreamReadResult
	for k := 0; k < n; k++ {
		key := string(bulkOf(keys[k]))
		entries, err := e.XReadAttempt(key, after[key])
		if err != nil {
			return errResult(err.Error())
		}
		if len(entries) > 0 {
			results = append(results, store.StreamReadResult{Key: key, Entries: entries})
		}
	}

	if len(results) > 0 {
		return immediate(streamReadsToRESP(results))
	}
	if blockMs < 0 {
		return immediate(resp.NullArray())
	}

	id := newClientID()
	ch := e.RegisterXREADBlock(id, after)
	return Result{
		Kind: WaitXREAD,
		XREAD: &XREADTicket{
			Timeout:  time.Duration(blockMs) * time.Millisecond,
			Ch:       ch,
			ClientID: id,
		},
	}
}

// EncodeStreamReads formats an XREAD(-attempt) result set into its RESP
// reply shape, exported so internal/server can reuse it when a blocked
// XREAD BLOCK waiter is finally fulfilled.
func EncodeStreamReads(results []store.StreamReadResult) resp.Value {
	if len(results) == 0 {
		return resp.NullArray()
	}
	return streamReadsToRESP(results)
}

func streamReadsToRESP(results []store.StreamReadResult) resp.Value {
	out := make([]resp.Value, len(results))
	for i, r := range results {
		out[i] = resp.ArrayValue([]resp.Value{
			resp.BulkStringValue(r.Key),
			resp.ArrayValue(entriesToRESP(r.Entries)),
		})
	}
	return resp.ArrayValue(out)
}
