package redis

import (
	"strconv"

	"github.com/redis/rueidis"

	"github.com/katoyeung/data-node/internal/db/reply"
)

func toValue(res rueidis.RedisResult) (reply.Value, error) {
	msg, err := res.ToMessage()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return reply.Nil(), nil
		}
		return reply.Value{}, err
	}
	return fromMessage(&msg), nil
}

// fromMessage converts a RESP2 message. Simple and bulk strings are not
// distinguished by rueidis, so both become Text.
func fromMessage(m *rueidis.RedisMessage) reply.Value {
	switch {
	case m.IsNil():
		return reply.Nil()
	case m.IsInt64():
		n, _ := m.AsInt64()
		return reply.Int(n)
	case m.IsString():
		s, _ := m.ToString()
		return reply.TextOf(s)
	case m.IsArray():
		arr, _ := m.ToArray()
		items := make([]reply.Value, len(arr))
		for i := range arr {
			items[i] = fromMessage(&arr[i])
		}
		return reply.ListOf(items...)
	case m.IsFloat64():
		f, _ := m.AsFloat64()
		return reply.TextOf(strconv.FormatFloat(f, 'f', -1, 64))
	case m.IsBool():
		b, _ := m.AsBool()
		if b {
			return reply.Int(1)
		}
		return reply.Int(0)
	default:
		return reply.Nil()
	}
}
