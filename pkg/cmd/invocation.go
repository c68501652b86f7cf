// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation). How it is registered and
// dispatched (Discord messages, CLI) is defined by adapters that wrap this.
package cmd

import "context"

// Invocation carries what any runner can pass: the name the command was called
// by, its arguments and an opaque payload. Adapters set Data to their context
// (e.g. the Discord session and event).
type Invocation struct {
	Name string
	Args []string
	Data any
}

// Command is the universal contract: identity plus execution. Permissions and
// transport-specific details stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Aliased is implemented by commands reachable under extra names.
type Aliased interface {
	Aliases() []string
}
