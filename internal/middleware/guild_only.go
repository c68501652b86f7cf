package middleware

import (
	"context"

	"botstone/internal/command"
	"botstone/pkg/cmd"
)

// WithGuildOnly refuses to run the command in direct messages.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			mc, err := command.FromInvocation(inv)
			if err != nil {
				return err
			}
			if mc.Event.GuildID == "" {
				return mc.Reply(ctx, "This command only works in a server.")
			}
			return c.Run(ctx, inv)
		})
	}
}
