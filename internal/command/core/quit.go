package core

import (
	"context"
	"log"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/pkg/cmd"
)

// QuitCommand shuts the bot down. Only the developer may run it.
type QuitCommand struct{}

func (c *QuitCommand) Name() string             { return "quit" }
func (c *QuitCommand) Description() string      { return "Shut the bot down (developer only)" }
func (c *QuitCommand) Aliases() []string        { return nil }
func (c *QuitCommand) Category() string         { return "⚙️ Maintenance" }
func (c *QuitCommand) Usage() string            { return "quit" }
func (c *QuitCommand) UserPermissions() []int64 { return nil }

func (c *QuitCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	if !mc.IsDeveloper() {
		return mc.ReplyError(ctx, "Only the bot developer can do that.")
	}
	if mc.Shutdown == nil {
		return mc.ReplyError(ctx, "There is no running bot to shut down.")
	}

	if err := mc.Reply(ctx, "Shutting down!"); err != nil {
		log.Printf("[WARN] Failed to confirm shutdown: %v", err)
	}
	log.Printf("[INFO] Shutdown requested by %s (%s)", mc.Event.Author.Username, mc.Event.Author.ID)
	mc.Shutdown()
	return nil
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&QuitCommand{},
		middleware.WithCommandLogger(),
	))
}
