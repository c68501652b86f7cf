package core

import (
	"context"
	"fmt"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string             { return "ping" }
func (c *PingCommand) Description() string      { return "Check bot latency" }
func (c *PingCommand) Aliases() []string        { return nil }
func (c *PingCommand) Category() string         { return "🕯️ Information" }
func (c *PingCommand) Usage() string            { return "ping" }
func (c *PingCommand) UserPermissions() []int64 { return nil }

func (c *PingCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	return mc.ReplyEmbed(ctx, &discordgo.MessageEmbed{
		Title:       "Pong! 🏓",
		Description: fmt.Sprintf("Latency: %dms", mc.API.HeartbeatLatency().Milliseconds()),
	})
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&PingCommand{},
		middleware.WithCommandLogger(),
	))
}
