package command

import (
	"strconv"
	"strings"
	"time"

	"github.com/dkazak/respkv/internal/resp"
	"github.com/dkazak/respkv/internal/store"
)

func cmdGet(e *store.Engine, args []resp.Value) Result {
	if len(args) != 1 {
		return errResult("ERR wrong number of arguments for 'get' command")
	}
	v, err := e.Get(string(bulkOf(args[0])))
	switch err {
	case nil:
		return immediate(resp.BulkValue(v))
	case store.ErrKeyNotFound, store.ErrKeyExpired:
		return immediate(resp.NullBulk())
	case store.ErrWrongType:
		return errResult(store.ErrWrongType.Error())
	default:
		return errResult("ERR " + err.Error())
	}
}

// cmdSet implements SET key value [EX seconds | PX milliseconds].
func cmdSet(e *store.Engine, args []resp.Value) Result {
	if len(args) != 2 && len(args) != 4 {
		return errResult("ERR wrong number of arguments for 'set' command")
	}
	key := string(bulkOf(args[0]))
	val := bulkOf(args[1])

	var ttl time.Duration
	hasExpiry := false
	if len(args) == 4 {
		unit := strings.ToUpper(string(bulkOf(args[2])))
		n, err := strconv.ParseInt(string(bulkOf(args[3])), 10, 64)
		if err != nil || n <= 0 {
			return errResult("ERR value is not an integer or out of range")
		}
		switch unit {
		case "EX":
			ttl = time.Duration(n) * time.Second
		case "PX":
			ttl = time.Duration(n) * time.Millisecond
		default:
			return errResult("ERR syntax error")
		}
		hasExpiry = true
	}

	if err := e.Set(key, val, ttl, hasExpiry); err != nil {
		return errResult("ERR " + err.Error())
	}
	return immediate(resp.SimpleStringValue("OK"))
}
