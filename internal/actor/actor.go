// Package actor runs the single goroutine that owns the internal/store
// Engine, generalizing the teacher's database.DBMu.Lock()/Unlock()
// pairing (cmd/main.go's handleOneConnection) into message-passing: every
// connection goroutine sends a request down one channel instead of
// acquiring a lock directly, so the engine itself needs none.
package actor

import (
	"github.com/dkazak/respkv/internal/command"
	"github.com/dkazak/respkv/internal/resp"
	"github.com/dkazak/respkv/internal/serverinfo"
	"github.com/dkazak/respkv/internal/store"
)

// request is one dispatch sent to the actor loop, or a cleanup
// notification for an abandoned wait-ticket.
type request struct {
	cmd     resp.Value
	reply   chan command.Result
	cleanup *cleanupMsg
}

// cleanupMsg asks the actor to deregister a waiter whose wait-ticket
// timed out before being fulfilled.
type cleanupMsg struct {
	blpopKey string
	clientID uint64
	isXREAD  bool
}

// Actor owns an Engine and serializes all access to it through in.
type Actor struct {
	engine *store.Engine
	in     chan request
}

// New starts the actor loop in its own goroutine and returns a handle to
// it. The loop runs until done is closed.
func New(engine *store.Engine, done <-chan struct{}) *Actor {
	a := &Actor{engine: engine, in: make(chan request, 64)}
	go a.run(done)
	return a
}

func (a *Actor) run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case req := <-a.in:
			if req.cleanup != nil {
				a.handleCleanup(req.cleanup)
				continue
			}
			serverinfo.CommandExecuted()
			req.reply <- command.Dispatch(a.engine, req.cmd)
		}
	}
}

func (a *Actor) handleCleanup(c *cleanupMsg) {
	if c.isXREAD {
		a.engine.CleanupXREAD(c.clientID)
		return
	}
	a.engine.CleanupBLPOP(c.blpopKey, c.clientID)
}

// Dispatch sends one parsed command to the actor and blocks for its
// Result. Safe to call concurrently from many connection goroutines.
func (a *Actor) Dispatch(cmd resp.Value) command.Result {
	reply := make(chan command.Result, 1)
	a.in <- request{cmd: cmd, reply: reply}
	return <-reply
}

// CleanupBLPOP tells the actor to drop a BLPOP waiter that timed out
// without being fulfilled.
func (a *Actor) CleanupBLPOP(key string, clientID uint64) {
	a.in <- request{cleanup: &cleanupMsg{blpopKey: key, clientID: clientID}}
}

// CleanupXREAD tells the actor to drop an XREAD BLOCK waiter that timed
// out without being fulfilled.
func (a *Actor) CleanupXREAD(clientID uint64) {
	a.in <- request{cleanup: &cleanupMsg{clientID: clientID, isXREAD: true}}
}
