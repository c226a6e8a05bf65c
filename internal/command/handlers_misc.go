package command

import (
	"github.com/dkazak/respkv/internal/resp"
	"github.com/dkazak/respkv/internal/serverinfo"
	"github.com/dkazak/respkv/internal/store"
)

func cmdPing(e *store.Engine, args []resp.Value) Result {
	if len(args) > 1 {
		return errResult("ERR wrong number of arguments for 'ping' command")
	}
	if len(args) == 1 {
		return immediate(resp.BulkValue(bulkOf(args[0])))
	}
	return immediate(resp.SimpleStringValue("PONG"))
}

func cmdEcho(e *store.Engine, args []resp.Value) Result {
	if len(args) != 1 {
		return errResult("ERR wrong number of arguments for 'echo' command")
	}
	return immediate(resp.BulkValue(bulkOf(args[0])))
}

func cmdType(e *store.Engine, args []resp.Value) Result {
	if len(args) != 1 {
		return errResult("ERR wrong number of arguments for 'type' command")
	}
	return immediate(resp.SimpleStringValue(e.Type(string(bulkOf(args[0]))).String()))
}

func cmdInfo(e *store.Engine, args []resp.Value) Result {
	if len(args) != 0 {
		return errResult("ERR wrong number of arguments for 'info' command")
	}
	return immediate(resp.BulkStringValue(serverinfo.Report()))
}
