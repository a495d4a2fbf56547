package db

import (
	"context"

	"github.com/katoyeung/data-node/internal/db/reply"
)

// Command is one positional store invocation. Keys precede Args on the wire;
// they are kept apart so cluster-aware drivers can route by key.
type Command struct {
	Name string
	Keys []string
	Args []string
}

// NewCommand creates a keyless command.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Argv returns the full argument vector including the command name.
func (c Command) Argv() []string {
	argv := make([]string, 0, 1+len(c.Keys)+len(c.Args))
	argv = append(argv, c.Name)
	argv = append(argv, c.Keys...)
	return append(argv, c.Args...)
}

// Driver sends commands to the remote store. Server error replies are
// returned as errors; a nil reply is reply.Absent with a nil error.
type Driver interface {
	Ping(ctx context.Context) error
	Do(ctx context.Context, cmd Command) (reply.Value, error)
	DoMulti(ctx context.Context, cmds ...Command) ([]reply.Value, error)
	Close()
}

// JSONSetItem holds a single key+data pair for pipelined JSON.SET at the root path.
type JSONSetItem struct {
	Key  string
	Data []byte
}
