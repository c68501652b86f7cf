package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// MessageSender is the part of *discordgo.Session Sender needs.
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sender posts payloads through the REST API, honouring ctx.
type Sender struct {
	api MessageSender
}

func NewSender(api MessageSender) *Sender {
	return &Sender{api: api}
}

func (s *Sender) Send(ctx context.Context, channelID string, payload *discordgo.MessageSend) (*discordgo.Message, error) {
	return s.api.ChannelMessageSendComplex(channelID, payload, discordgo.WithContext(ctx))
}
