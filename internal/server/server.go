// Package server accepts TCP connections and drives each one's RESP
// request/reply loop, generalizing the teacher's handleOneConnection
// (cmd/main.go) from a bufio.Reader-blocking parse to the incremental,
// non-blocking internal/resp.Decode contract a single actor goroutine
// requires.
package server

import (
	"net"
	"sync"
	"time"

	"github.com/dkazak/respkv/internal/actor"
	"github.com/dkazak/respkv/internal/command"
	"github.com/dkazak/respkv/internal/logging"
	"github.com/dkazak/respkv/internal/resp"
	"github.com/dkazak/respkv/internal/serverinfo"
)

const readChunkSize = 4096

// Server listens on one address and dispatches every connection's
// commands to a shared Actor.
type Server struct {
	addr  string
	actor *actor.Actor

	mu        sync.Mutex
	listeners []net.Listener
}

// New returns a Server bound to addr, not yet listening.
func New(addr string, a *actor.Actor) *Server {
	return &Server{addr: addr, actor: a}
}

// Serve listens on s.addr and handles connections until Shutdown closes
// the listener. It blocks until the listener is closed.
func (s *Server) Serve() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, ln)
	s.mu.Unlock()

	logging.Default.Info("listening on %s\n", s.addr)

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			logging.Default.Warn("listener on %s closed\n", s.addr)
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(conn)
		}()
	}
	wg.Wait()
	return nil
}

// Shutdown closes every listener this Server has opened, unblocking
// Serve's Accept loop.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ln := range s.listeners {
		ln.Close()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	logging.Default.Info("accepted connection from %s\n", conn.RemoteAddr())
	serverinfo.ClientConnected()
	defer serverinfo.ClientDisconnected()

	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		req, consumed, ok, err := tryDecode(buf)
		if err != nil {
			conn.Write(resp.EncodeBytes(resp.ErrorValue("ERR Protocol error: " + err.Error())))
			return
		}
		if !ok {
			n, rerr := conn.Read(chunk)
			if n > 0 {
				buf = append(buf, chunk[:n]...)
			}
			if rerr != nil {
				if n == 0 {
					return
				}
				continue
			}
			continue
		}
		buf = buf[consumed:]

		result := s.actor.Dispatch(req)
		reply, err := s.awaitResult(result)
		if err != nil {
			return
		}
		if _, werr := conn.Write(resp.EncodeBytes(reply)); werr != nil {
			return
		}
	}
}

// tryDecode attempts one RESP decode over buf, distinguishing "need more
// bytes" from a hard parse error.
func tryDecode(buf []byte) (resp.Value, int, bool, error) {
	if len(buf) == 0 {
		return resp.Value{}, 0, false, nil
	}
	v, n, err := resp.Decode(buf)
	switch err {
	case nil:
		return v, n, true, nil
	case resp.ErrIncomplete:
		return resp.Value{}, 0, false, nil
	default:
		return resp.Value{}, 0, false, err
	}
}

// awaitResult resolves a command.Result to the value that should be
// written back to the client, parking on a wait-ticket's channel (with
// timeout) for BLPOP/XREAD BLOCK.
func (s *Server) awaitResult(result command.Result) (resp.Value, error) {
	switch result.Kind {
	case command.Immediate:
		return result.Value, nil

	case command.WaitBLPOP:
		return s.awaitBLPOP(result.BLPOP), nil

	case command.WaitXREAD:
		return s.awaitXREAD(result.XREAD), nil

	default:
		return resp.ErrorValue("ERR internal error"), nil
	}
}

func (s *Server) awaitBLPOP(t *command.BLPOPTicket) resp.Value {
	if t.Timeout <= 0 {
		got := <-t.Ch
		return resp.ArrayValue([]resp.Value{
			resp.BulkStringValue(got.Key),
			resp.BulkValue(got.Value),
		})
	}

	timer := time.NewTimer(t.Timeout)
	defer timer.Stop()
	select {
	case got := <-t.Ch:
		return resp.ArrayValue([]resp.Value{
			resp.BulkStringValue(got.Key),
			resp.BulkValue(got.Value),
		})
	case <-timer.C:
		s.actor.CleanupBLPOP(t.Key, t.ClientID)
		return resp.NullArray()
	}
}

func (s *Server) awaitXREAD(t *command.XREADTicket) resp.Value {
	if t.Timeout <= 0 {
		got := <-t.Ch
		return command.EncodeStreamReads(got)
	}

	timer := time.NewTimer(t.Timeout)
	defer timer.Stop()
	select {
	case got := <-t.Ch:
		return command.EncodeStreamReads(got)
	case <-timer.C:
		s.actor.CleanupXREAD(t.ClientID)
		return resp.NullArray()
	}
}
