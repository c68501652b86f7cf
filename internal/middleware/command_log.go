package middleware

import (
	"context"
	"log"
	"strings"
	"time"

	"botstone/internal/command"
	"botstone/internal/storage"
	"botstone/pkg/cmd"
)

// WithCommandLogger records every guild invocation in the command history
// after the command ran, whatever its outcome.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			mc, cerr := command.FromInvocation(inv)
			if cerr != nil || mc.Storage == nil || mc.Event.GuildID == "" {
				return err
			}

			e := mc.Event
			record := storage.CommandHistoryRecord{
				ChannelID:   e.ChannelID,
				ChannelName: mc.ChannelName,
				GuildName:   mc.GuildName,
				UserID:      e.Author.ID,
				Username:    e.Author.Username,
				Command:     c.Name(),
				Param:       strings.Join(inv.Args, " "),
				Datetime:    time.Now(),
			}
			if lerr := mc.Storage.AppendCommandToHistory(e.GuildID, record); lerr != nil {
				log.Printf("[WARN] Failed to log command %s: %v", c.Name(), lerr)
			}
			return err
		})
	}
}
