// Package serverinfo renders the INFO command's reply, grounded in the
// teacher's internal/common/info.go but trimmed to the subsystems this
// server actually has (no RDB/AOF/transactions).
package serverinfo

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
)

var (
	startTime    = time.Now()
	clientsGauge int64
	commandsExec int64
)

// ClientConnected/ClientDisconnected track the live connection count shown
// under the Clients section.
func ClientConnected()    { atomic.AddInt64(&clientsGauge, 1) }
func ClientDisconnected() { atomic.AddInt64(&clientsGauge, -1) }

// CommandExecuted increments the running total shown under Stats.
func CommandExecuted() { atomic.AddInt64(&commandsExec, 1) }

// Report builds the full INFO text.
func Report() string {
	var memTotal uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		memTotal = vm.Total
	}

	var rt runtime.MemStats
	runtime.ReadMemStats(&rt)

	msg := "\n"
	msg += section("Server", map[string]string{
		"redis_version": "respkv-1.0.0",
		"process_id":    strconv.Itoa(os.Getpid()),
		"uptime_in_sec": fmt.Sprintf("%d", int64(time.Since(startTime).Seconds())),
		"go_version":    runtime.Version(),
	})
	msg += section("Clients", map[string]string{
		"connected_clients": fmt.Sprint(atomic.LoadInt64(&clientsGauge)),
	})
	msg += section("Memory", map[string]string{
		"used_memory":       fmt.Sprintf("%d", rt.HeapAlloc),
		"used_memory_rss":   fmt.Sprintf("%d", rt.Sys),
		"total_system_memory": fmt.Sprintf("%d", memTotal),
	})
	msg += section("Stats", map[string]string{
		"total_commands_processed": fmt.Sprint(atomic.LoadInt64(&commandsExec)),
	})
	return msg
}

func section(header string, m map[string]string) string {
	s := fmt.Sprintf("# %s\n", header)
	for k, v := range m {
		s += fmt.Sprintf("%s:%s\n", k, v)
	}
	s += "\n"
	return s
}
