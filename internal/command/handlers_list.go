package command

import (
	"strconv"
	"time"

	"github.com/dkazak/respkv/internal/resp"
	"github.com/dkazak/respkv/internal/store"
)

func bulksOf(args []resp.Value) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = bulkOf(a)
	}
	return out
}

func cmdRPush(e *store.Engine, args []resp.Value) Result {
	if len(args) < 2 {
		return errResult("ERR wrong number of arguments for 'rpush' command")
	}
	n, err := e.RPush(string(bulkOf(args[0])), bulksOf(args[1:]))
	if err != nil {
		return errResult(err.Error())
	}
	return immediate(resp.IntegerValue(int64(n)))
}

func cmdLPush(e *store.Engine, args []resp.Value) Result {
	if len(args) < 2 {
		return errResult("ERR wrong number of arguments for 'lpush' command")
	}
	n, err := e.LPush(string(bulkOf(args[0])), bulksOf(args[1:]))
	if err != nil {
		return errResult(err.Error())
	}
	return immediate(resp.IntegerValue(int64(n)))
}

func cmdLRange(e *store.Engine, args []resp.Value) Result {
	if len(args) != 3 {
		return errResult("ERR wrong number of arguments for 'lrange' command")
	}
	start, err1 := strconv.Atoi(string(bulkOf(args[1])))
	end, err2 := strconv.Atoi(string(bulkOf(args[2])))
	if err1 != nil || err2 != nil {
		return errResult("ERR value is not an integer or out of range")
	}
	items, err := e.LRange(string(bulkOf(args[0])), start, end)
	if err != nil {
		return errResult(err.Error())
	}
	elems := make([]resp.Value, len(items))
	for i, it := range items {
		elems[i] = resp.BulkValue(it)
	}
	return immediate(resp.ArrayValue(elems))
}

func cmdLLen(e *store.Engine, args []resp.Value) Result {
	if len(args) != 1 {
		return errResult("ERR wrong number of arguments for 'llen' command")
	}
	n, err := e.LLen(string(bulkOf(args[0])))
	if err != nil {
		return errResult(err.Error())
	}
	return immediate(resp.IntegerValue(int64(n)))
}

// cmdLPop implements LPOP key [count]. Negative/zero count is rejected
// with InvalidInput per §9 ("source does not validate; specify rejection
// ... in a fresh implementation"). The reply shape is chosen by the
// cardinality of what LPop actually returned, not by whether count was
// passed: 0 elements -> null bulk string, 1 -> bulk string, >1 -> array.
func cmdLPop(e *store.Engine, args []resp.Value) Result {
	if len(args) != 1 && len(args) != 2 {
		return errResult("ERR wrong number of arguments for 'lpop' command")
	}
	count := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(string(bulkOf(args[1])))
		if err != nil || n <= 0 {
			return errResult("ERR value is out of range, must be positive")
		}
		count = n
	}

	items, err := e.LPop(string(bulkOf(args[0])), count)
	if err == store.ErrKeyNotFound {
		return immediate(resp.NullBulk())
	}
	if err != nil {
		return errResult(err.Error())
	}
	switch len(items) {
	case 0:
		return immediate(resp.NullBulk())
	case 1:
		return immediate(resp.BulkValue(items[0]))
	default:
		elems := make([]resp.Value, len(items))
		for i, it := range items {
			elems[i] = resp.BulkValue(it)
		}
		return immediate(resp.ArrayValue(elems))
	}
}

// cmdBLPop implements BLPOP key timeout. On an empty list it returns a
// wait-ticket instead of an Immediate result, after registering the
// waiter with the engine itself; internal/actor hands the ticket to the
// connection.
func cmdBLPop(e *store.Engine, args []resp.Value) Result {
	if len(args) != 2 {
		return errResult("ERR wrong number of arguments for 'blpop' command")
	}
	key := string(bulkOf(args[0]))
	seconds, err := strconv.ParseFloat(string(bulkOf(args[1])), 64)
	if err != nil || seconds < 0 {
		return errResult("ERR timeout is not a float or out of range")
	}

	if v, ok := e.BLPopAttempt(key); ok {
		return immediate(resp.ArrayValue([]resp.Value{
			resp.BulkStringValue(key),
			resp.BulkValue(v),
		}))
	}

	id := newClientID()
	ch := e.RegisterBLPOP(key, id)
	return Result{
		Kind: WaitBLPOP,
		BLPOP: &BLPOPTicket{
			Timeout:  time.Duration(seconds * float64(time.Second)),
			Ch:       ch,
			Key:      key,
			ClientID: id,
		},
	}
}
