package middleware

import (
	"context"
	"fmt"
	"strings"

	"botstone/internal/command"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionAdministrator:      "Administrator",
	discordgo.PermissionManageGuild:        "Manage Server",
	discordgo.PermissionManageChannels:     "Manage Channels",
	discordgo.PermissionManageMessages:     "Manage Messages",
	discordgo.PermissionManageRoles:        "Manage Roles",
	discordgo.PermissionSendMessages:       "Send Messages",
	discordgo.PermissionEmbedLinks:         "Embed Links",
	discordgo.PermissionAddReactions:       "Add Reactions",
	discordgo.PermissionReadMessageHistory: "Read Message History",
}

// WithUserPermissionCheck runs the command only when the author has any of
// its UserPermissions in the channel.
func WithUserPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			mc, err := command.FromInvocation(inv)
			if err != nil {
				return err
			}
			var required []int64
			if meta, ok := command.Meta(c); ok {
				required = meta.UserPermissions()
			}
			allowed, err := RequirePermissions(ctx, mc, required)
			if err != nil || !allowed {
				return err
			}
			return c.Run(ctx, inv)
		})
	}
}

// RequirePermissions reports whether the author holds any of required in the
// channel, telling them what is missing when not. Administrators and the bot
// developer always pass, as does an empty requirement or a direct message.
func RequirePermissions(ctx context.Context, mc *command.MessageContext, required []int64) (bool, error) {
	if len(required) == 0 || mc.Event.GuildID == "" || mc.IsDeveloper() {
		return true, nil
	}

	perms, err := mc.API.UserChannelPermissions(mc.Event.Author.ID, mc.Event.ChannelID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to get user permissions: %w", err)
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	for _, p := range required {
		if perms&p != 0 {
			return true, nil
		}
	}

	return false, mc.ReplyError(ctx, fmt.Sprintf(
		"You need at least one of the following permissions to run this command:\n`%s`",
		strings.Join(permissionNames(required), "`, `"),
	))
}

func permissionNames(perms []int64) []string {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		name := PermissionNames[p]
		if name == "" {
			name = fmt.Sprintf("0x%x", p)
		}
		names = append(names, name)
	}
	return names
}
