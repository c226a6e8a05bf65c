// Package command maps a parsed RESP array to an internal/store engine
// call and formats the reply, generalizing the teacher's
// map[string]Handler dispatch table (internal/handlers/handlers.go) to
// return a Result — either an immediate reply or a wait-ticket — instead
// of writing straight to a connection, since blocking commands here must
// hand control back to the actor rather than the socket.
package command

import (
	"strings"
	"time"

	"github.com/dkazak/respkv/internal/clientid"
	"github.com/dkazak/respkv/internal/resp"
	"github.com/dkazak/respkv/internal/store"
)

// ResultKind discriminates the three shapes a command can produce.
type ResultKind int

const (
	// Immediate carries a reply value ready to write to the client.
	Immediate ResultKind = iota
	// WaitBLPOP carries a wait-ticket for a blocked BLPOP.
	WaitBLPOP
	// WaitXREAD carries a wait-ticket for a blocked XREAD.
	WaitXREAD
)

// BLPOPTicket is the wait-ticket returned when BLPOP finds nothing to
// pop immediately: a timeout (0 means forever), the one-shot receiver,
// and enough identity for the connection handler to request cleanup.
type BLPOPTicket struct {
	Timeout  time.Duration
	Ch       chan store.ListPopResult
	Key      string
	ClientID uint64
}

// XREADTicket is the wait-ticket returned when XREAD BLOCK finds nothing
// to read immediately.
type XREADTicket struct {
	Timeout  time.Duration
	Ch       chan []store.StreamReadResult
	ClientID uint64
}

// Result is the outcome of dispatching one command.
type Result struct {
	Kind  ResultKind
	Value resp.Value
	BLPOP *BLPOPTicket
	XREAD *XREADTicket
}

func immediate(v resp.Value) Result { return Result{Kind: Immediate, Value: v} }

func errResult(msg string) Result { return immediate(resp.ErrorValue(msg)) }

// handlerFunc executes one command against the engine and produces its
// Result. args excludes the command name itself.
type handlerFunc func(e *store.Engine, args []resp.Value) Result

// Handlers is the uppercased-command-name dispatch table, mirroring the
// shape of the teacher's Handlers map.
var Handlers = map[string]handlerFunc{
	"PING": cmdPing,
	"ECHO": cmdEcho,

	"GET": cmdGet,
	"SET": cmdSet,

	"RPUSH":  cmdRPush,
	"LPUSH":  cmdLPush,
	"LRANGE": cmdLRange,
	"LLEN":   cmdLLen,
	"LPOP":   cmdLPop,
	"BLPOP":  cmdBLPop,

	"TYPE": cmdType,

	"XADD":   cmdXAdd,
	"XRANGE": cmdXRange,
	"XREAD":  cmdXRead,

	"INFO": cmdInfo,
}

// Dispatch looks up the command named by req.Elems[0] and runs it. A req
// that is not a non-empty Array gets an "invalid request" error; elements
// that are not BulkStrings are read as empty arguments.
func Dispatch(e *store.Engine, req resp.Value) Result {
	if req.Kind != resp.Array || len(req.Elems) == 0 {
		return errResult("ERR invalid request")
	}
	name := strings.ToUpper(string(req.Elems[0].Bulk))
	h, ok := Handlers[name]
	if !ok {
		return errResult("ERR unknown command '" + name + "'")
	}
	return h(e, req.Elems[1:])
}

func bulkOf(v resp.Value) []byte { return v.Bulk }

func newClientID() uint64 { return clientid.Next() }
