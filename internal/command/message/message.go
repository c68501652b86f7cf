package message

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

const confirmEmoji = "\u2705"

// MessageCommand sends and edits rich messages on behalf of administrators.
// The message comes from the rest of the command line when given, otherwise
// from the interactive builder.
type MessageCommand struct{}

func (c *MessageCommand) Name() string { return "message" }
func (c *MessageCommand) Description() string {
	return "Send a rich message to a channel, or edit one sent before"
}
func (c *MessageCommand) Aliases() []string { return []string{"msg"} }
func (c *MessageCommand) Category() string  { return "📢 Utilities" }
func (c *MessageCommand) Usage() string {
	return "message send|new <#channel> [message] | message edit|update <#channel> <message id> [message]"
}
func (c *MessageCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

func (c *MessageCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	sub, rest := command.NextArg(mc.Rest)
	switch strings.ToLower(sub) {
	case "send", "new":
		return c.send(ctx, mc, rest)
	case "edit", "update":
		return c.edit(ctx, mc, rest)
	default:
		return mc.Reply(ctx, "Please use one of the subcommands! (send, edit)")
	}
}

func (c *MessageCommand) send(ctx context.Context, mc *command.MessageContext, args string) error {
	channelArg, rest := command.NextArg(args)
	channelID, ok := command.ParseChannel(channelArg)
	if !ok {
		return mc.Reply(ctx, fmt.Sprintf("Not a valid channel mention: %q", channelArg))
	}
	if inGuild, err := sameGuild(ctx, mc, channelID); err != nil || !inGuild {
		return err
	}

	payload, err := obtain(ctx, mc, rest)
	if err != nil || payload == nil {
		return err
	}

	sent, err := mc.API.ChannelMessageSendComplex(channelID, payload, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	log.Printf("[INFO] %s sent message %s to channel %s", mc.Event.Author.Username, sent.ID, channelID)
	return mc.React(ctx, confirmEmoji)
}

func (c *MessageCommand) edit(ctx context.Context, mc *command.MessageContext, args string) error {
	channelArg, rest := command.NextArg(args)
	channelID, ok := command.ParseChannel(channelArg)
	if !ok {
		return mc.Reply(ctx, fmt.Sprintf("Not a valid channel mention: %q", channelArg))
	}
	if inGuild, err := sameGuild(ctx, mc, channelID); err != nil || !inGuild {
		return err
	}
	messageArg, rest := command.NextArg(rest)
	messageID, ok := command.ParseMessageRef(messageArg, channelID)
	if !ok {
		return mc.Reply(ctx, fmt.Sprintf("Not a valid message ID: %q", messageArg))
	}

	if _, err := mc.API.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return mc.ReplyError(ctx, fmt.Sprintf("Unable to find message `%s` in <#%s>.", messageID, channelID))
	}

	payload, err := obtain(ctx, mc, rest)
	if err != nil || payload == nil {
		return err
	}

	edit := richmsg.EditFromSend(channelID, messageID, payload)
	if _, err := mc.API.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit message %s: %w", messageID, err)
	}
	log.Printf("[INFO] %s edited message %s in channel %s", mc.Event.Author.Username, messageID, channelID)
	return mc.React(ctx, confirmEmoji)
}

// sameGuild reports whether channelID belongs to the guild the command came
// from, telling the requester when it does not.
func sameGuild(ctx context.Context, mc *command.MessageContext, channelID string) (bool, error) {
	ch, err := mc.API.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil || ch.GuildID != mc.Event.GuildID {
		if err != nil {
			log.Printf("[WARN] Channel %s lookup failed: %v", channelID, err)
		}
		return false, mc.ReplyError(ctx, fmt.Sprintf("<#%s> is not a channel of this server.", channelID))
	}
	return true, nil
}

// obtain reads the message from text, or runs the builder when text is empty.
// A nil payload with a nil error means the requester was already told why
// nothing will be sent.
func obtain(ctx context.Context, mc *command.MessageContext, text string) (*discordgo.MessageSend, error) {
	var payload *discordgo.MessageSend
	if strings.TrimSpace(text) != "" {
		p, err := richmsg.ParseContent(text)
		if err != nil {
			return nil, mc.ReplyError(ctx, fmt.Sprintf("Unable to read the message: %v", err))
		}
		payload = p
	} else {
		if mc.Composer == nil {
			return nil, fmt.Errorf("message builder is not available")
		}
		p, err := mc.Composer.Compose(ctx, mc.Event.ChannelID, mc.Event.Author.ID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, mc.Reply(ctx, "Message builder closed, nothing was sent.")
		}
		payload = p
	}

	if richmsg.IsEmpty(payload) {
		return nil, mc.Reply(ctx, "The message is empty, nothing was sent.")
	}
	return payload, nil
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&MessageCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	))
}
