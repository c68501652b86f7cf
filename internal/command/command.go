// Package command adapts the transport-agnostic pkg/cmd core to prefix
// commands sent as Discord messages.
package command

import (
	"context"
	"fmt"
	"time"

	"botstone/internal/storage"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Command is what every bot command implements on top of cmd.Command.
type Command interface {
	cmd.Command
	Aliases() []string
	Category() string
	Usage() string
	UserPermissions() []int64
}

// API is the part of *discordgo.Session that commands call.
type API interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	HeartbeatLatency() time.Duration
}

// Composer runs the interactive message builder.
type Composer interface {
	Compose(ctx context.Context, channelID, userID string) (*discordgo.MessageSend, error)
}

// MessageContext is the Invocation.Data of a prefix command.
type MessageContext struct {
	API         API
	Event       *discordgo.MessageCreate
	Storage     *storage.Storage
	Composer    Composer
	Registry    *cmd.Registry
	Prefix      string
	GuildName   string
	ChannelName string
	Rest        string // raw text after the command name, whitespace preserved

	DeveloperID string // bot owner, passes every permission check
	SupportURL  string
	Shutdown    func() // stops the bot, nil outside a running bot
}

// IsDeveloper reports whether the author is the configured bot owner.
func (mc *MessageContext) IsDeveloper() bool {
	return mc.DeveloperID != "" && mc.Event.Author != nil && mc.Event.Author.ID == mc.DeveloperID
}

// FromInvocation extracts the message context set by the dispatcher.
func FromInvocation(inv *cmd.Invocation) (*MessageContext, error) {
	mc, ok := inv.Data.(*MessageContext)
	if !ok || mc == nil {
		return nil, fmt.Errorf("wrong context type %T", inv.Data)
	}
	return mc, nil
}

// Meta returns the bot command behind any middleware wrapping.
func Meta(c cmd.Command) (Command, bool) {
	return cmd.As[Command](c)
}
