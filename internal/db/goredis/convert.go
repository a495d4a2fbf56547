package goredis

import (
	"strconv"

	"github.com/katoyeung/data-node/internal/db/reply"
)

// fromInterface converts a go-redis RESP2 reply. Status replies arrive as
// plain strings and become Text.
func fromInterface(v any) reply.Value {
	switch t := v.(type) {
	case nil:
		return reply.Nil()
	case int64:
		return reply.Int(t)
	case string:
		return reply.TextOf(t)
	case []byte:
		return reply.TextOf(string(t))
	case []any:
		items := make([]reply.Value, len(t))
		for i, e := range t {
			items[i] = fromInterface(e)
		}
		return reply.ListOf(items...)
	case float64:
		return reply.TextOf(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		if t {
			return reply.Int(1)
		}
		return reply.Int(0)
	default:
		return reply.Nil()
	}
}
