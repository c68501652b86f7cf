package custom

import (
	"context"
	"fmt"
	"log"
	"strings"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/internal/richmsg"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// CustomCommand manages the per-guild commands that answer with stored
// content. Listing is open to everyone; changing them needs Administrator.
type CustomCommand struct{}

var managePermissions = []int64{discordgo.PermissionAdministrator}

func (c *CustomCommand) Name() string        { return "command" }
func (c *CustomCommand) Description() string { return "Manage this server's custom commands" }
func (c *CustomCommand) Aliases() []string   { return []string{"cmd"} }
func (c *CustomCommand) Category() string    { return "🧩 Custom" }
func (c *CustomCommand) Usage() string {
	return "command set|add <name> <content> | command remove <name> | command list"
}
func (c *CustomCommand) UserPermissions() []int64 { return nil }

func (c *CustomCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	sub, rest := command.NextArg(mc.Rest)
	switch strings.ToLower(sub) {
	case "set", "add":
		return c.set(ctx, mc, rest)
	case "remove", "delete":
		return c.remove(ctx, mc, rest)
	case "list":
		return c.list(ctx, mc)
	default:
		return mc.Reply(ctx, "Please use one of the subcommands! (set, remove, list)")
	}
}

func (c *CustomCommand) set(ctx context.Context, mc *command.MessageContext, args string) error {
	if ok, err := middleware.RequirePermissions(ctx, mc, managePermissions); err != nil || !ok {
		return err
	}

	name, content := command.NextArg(args)
	name = strings.ToLower(name)
	content = strings.TrimSpace(content)
	if name == "" || content == "" {
		return mc.Reply(ctx, fmt.Sprintf("Usage: `%scommand set <name> <content>`", mc.Prefix))
	}
	if mc.Registry != nil {
		if _, taken := mc.Registry.Lookup(name); taken {
			return mc.Reply(ctx, "This command is already hardcoded! Please choose a different name!")
		}
	}
	if richmsg.LooksStructured(content) {
		if _, err := richmsg.ParseContent(content); err != nil {
			return mc.ReplyError(ctx, fmt.Sprintf("Unable to read the message: %v", err))
		}
	}

	if err := mc.Storage.SetCustomCommand(mc.Event.GuildID, name, content); err != nil {
		return fmt.Errorf("failed to save custom command %q: %w", name, err)
	}
	return mc.Reply(ctx, fmt.Sprintf("Command `%s` successfully set!", name))
}

func (c *CustomCommand) remove(ctx context.Context, mc *command.MessageContext, args string) error {
	if ok, err := middleware.RequirePermissions(ctx, mc, managePermissions); err != nil || !ok {
		return err
	}

	name, _ := command.NextArg(args)
	if name == "" {
		return mc.Reply(ctx, fmt.Sprintf("Usage: `%scommand remove <name>`", mc.Prefix))
	}
	existed, err := mc.Storage.RemoveCustomCommand(mc.Event.GuildID, name)
	if err != nil {
		return fmt.Errorf("failed to remove custom command %q: %w", name, err)
	}
	if !existed {
		return mc.Reply(ctx, fmt.Sprintf("There is no custom command named `%s`.", strings.ToLower(name)))
	}
	return mc.Reply(ctx, fmt.Sprintf("Command `%s` successfully removed!", strings.ToLower(name)))
}

func (c *CustomCommand) list(ctx context.Context, mc *command.MessageContext) error {
	names, err := mc.Storage.CustomCommandNames(mc.Event.GuildID)
	if err != nil {
		return fmt.Errorf("failed to list custom commands: %w", err)
	}

	desc := "This server has no custom commands yet."
	if len(names) > 0 {
		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "`%s%s`\n", mc.Prefix, name)
		}
		desc = sb.String()
	}
	return mc.ReplyEmbed(ctx, &discordgo.MessageEmbed{
		Title:       "Custom commands",
		Description: desc,
		Color:       command.EmbedColor,
	})
}

// Fallback answers name with the guild's stored content, reporting false when
// no such custom command exists. {user} in the content mentions the author.
// Content that reads as a rich message is sent as one, anything else as text.
func Fallback(ctx context.Context, mc *command.MessageContext, name string) (bool, error) {
	if mc.Event.GuildID == "" || mc.Storage == nil {
		return false, nil
	}
	content, ok, err := mc.Storage.CustomCommand(mc.Event.GuildID, name)
	if err != nil || !ok {
		return false, err
	}

	text := strings.ReplaceAll(content, "{user}", "<@"+mc.Event.Author.ID+">")
	payload, err := richmsg.ParseContent(text)
	if err != nil || richmsg.IsEmpty(payload) {
		if err != nil {
			log.Printf("[WARN] Custom command %q in guild %s is not a valid message, sending as text: %v", name, mc.Event.GuildID, err)
		}
		payload = &discordgo.MessageSend{Content: text}
	}
	payload.AllowedMentions = &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
	}

	return true, mc.Send(ctx, payload)
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&CustomCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	))
}
