// Command respkv-server runs the RESP key/value server, generalizing
// the teacher's cmd/main.go bootstrap sequence (config -> state -> listen
// -> accept loop -> graceful shutdown on SIGINT/SIGTERM).
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dkazak/respkv/internal/actor"
	"github.com/dkazak/respkv/internal/config"
	"github.com/dkazak/respkv/internal/logging"
	"github.com/dkazak/respkv/internal/server"
	"github.com/dkazak/respkv/internal/store"
)

func main() {
	logging.Default.Info(">>>> respkv server <<<<\n")

	cfg := config.Load()
	logging.Default.Info("listen address: %s\n", cfg.Addr)

	engine := store.New()
	done := make(chan struct{})
	a := actor.New(engine, done)

	srv := server.New(cfg.Addr, a)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logging.Default.Warn("signal received, shutting down\n")
		srv.Shutdown()
		close(done)
	}()

	if err := srv.Serve(); err != nil {
		logging.Default.Error("serve: %v\n", err)
		os.Exit(1)
	}

	logging.Default.Warn("goodbye\n")
}
