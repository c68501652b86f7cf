package core

import (
	"context"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/internal/version"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type InfoCommand struct{}

func (c *InfoCommand) Name() string             { return "info" }
func (c *InfoCommand) Description() string      { return "Show version and build details" }
func (c *InfoCommand) Aliases() []string        { return []string{"about", "version"} }
func (c *InfoCommand) Category() string         { return "🕯️ Information" }
func (c *InfoCommand) Usage() string            { return "info" }
func (c *InfoCommand) UserPermissions() []int64 { return nil }

func (c *InfoCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	return mc.ReplyEmbed(ctx, infoEmbed(version.Get()))
}

func infoEmbed(info version.Info) *discordgo.MessageEmbed {
	commit := info.ShortCommit()
	if info.Modified {
		commit += " (modified)"
	}
	built := info.BuildTime
	if built == "" {
		built = "unknown"
	}
	return &discordgo.MessageEmbed{
		Title:       version.AppName,
		Description: "Sends and edits rich messages, and keeps per-server custom commands.",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: info.Version, Inline: true},
			{Name: "Commit", Value: commit, Inline: true},
			{Name: "Built", Value: built, Inline: true},
			{Name: "Go", Value: info.GoVersion, Inline: true},
		},
	}
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&InfoCommand{},
		middleware.WithCommandLogger(),
	))
}
