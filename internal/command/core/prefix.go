package core

import (
	"context"
	"fmt"
	"unicode/utf8"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

const maxPrefixLength = 10

type PrefixCommand struct{}

func (c *PrefixCommand) Name() string        { return "prefix" }
func (c *PrefixCommand) Description() string { return "Show or change the command prefix of this server" }
func (c *PrefixCommand) Aliases() []string   { return nil }
func (c *PrefixCommand) Category() string    { return "⚙️ Settings" }
func (c *PrefixCommand) Usage() string       { return "prefix [new prefix]" }
func (c *PrefixCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}

func (c *PrefixCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	switch len(inv.Args) {
	case 0:
		return mc.Reply(ctx, fmt.Sprintf("My prefix here is `%s`.", mc.Prefix))
	case 1:
	default:
		return mc.Reply(ctx, "A prefix cannot contain spaces.")
	}

	prefix := inv.Args[0]
	if utf8.RuneCountInString(prefix) > maxPrefixLength {
		return mc.Reply(ctx, fmt.Sprintf("A prefix can be at most %d characters long.", maxPrefixLength))
	}
	if err := mc.Storage.SetPrefix(mc.Event.GuildID, prefix); err != nil {
		return fmt.Errorf("failed to save prefix: %w", err)
	}

	guild := mc.GuildName
	if guild == "" {
		guild = "this server"
	}
	return mc.Reply(ctx, fmt.Sprintf("My new prefix for `%s` is `%s`!", guild, prefix))
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&PrefixCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	))
}
