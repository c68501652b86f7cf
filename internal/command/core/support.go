package core

import (
	"context"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/internal/version"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type SupportCommand struct{}

func (c *SupportCommand) Name() string             { return "support" }
func (c *SupportCommand) Description() string      { return "Where to get more help" }
func (c *SupportCommand) Aliases() []string        { return nil }
func (c *SupportCommand) Category() string         { return "🕯️ Information" }
func (c *SupportCommand) Usage() string            { return "support" }
func (c *SupportCommand) UserPermissions() []int64 { return nil }

func (c *SupportCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	server := mc.SupportURL
	if server == "" {
		server = "Unavailable"
	}
	return mc.ReplyEmbed(ctx, &discordgo.MessageEmbed{
		Title:       version.AppName + " Support",
		Description: "Need more help?",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Support Server", Value: server},
			{Name: "Commands", Value: "`" + mc.Prefix + "help <command>` explains any command."},
		},
	})
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&SupportCommand{},
		middleware.WithCommandLogger(),
	))
}
