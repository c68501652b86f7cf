package core

import (
	"context"
	"fmt"
	"strings"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

const (
	discordMaxMessageLength = 2000
	codeLeftBlockWrapper    = "```md"
	codeRightBlockWrapper   = "```"
)

var maxLogLength = discordMaxMessageLength - len(codeLeftBlockWrapper) - len(codeRightBlockWrapper) - 2

// LogCommand shows the server's most recent commands, newest first.
type LogCommand struct{}

func (c *LogCommand) Name() string        { return "log" }
func (c *LogCommand) Description() string { return "Review recent commands used in this server" }
func (c *LogCommand) Aliases() []string   { return []string{"history"} }
func (c *LogCommand) Category() string    { return "⚙️ Maintenance" }
func (c *LogCommand) Usage() string       { return "log" }
func (c *LogCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}

func (c *LogCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	records, err := mc.Storage.FetchCommandHistory(mc.Event.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch command history: %w", err)
	}
	if len(records) == 0 {
		return mc.Reply(ctx, "No command history found.")
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-19s\t%-15s\t%-12s\t%s\n", "# Datetime", "# Username", "# Channel", "# Command"))
	for idx := len(records) - 1; idx >= 0; idx-- {
		r := records[idx]
		channel := r.ChannelName
		if channel == "" {
			channel = r.ChannelID
		}
		line := fmt.Sprintf("%-19s\t%-15s\t#%-12s\t%s%s\n",
			r.Datetime.Format("2006-01-02 15:04:05"), r.Username, channel, mc.Prefix, strings.TrimSpace(r.Command+" "+r.Param))
		if builder.Len()+len(line) > maxLogLength {
			break
		}
		builder.WriteString(line)
	}
	return mc.Reply(ctx, codeLeftBlockWrapper+"\n"+builder.String()+codeRightBlockWrapper)
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&LogCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	))
}
