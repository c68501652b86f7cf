package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

const (
	EmbedColor = 0x7289DA
	ErrorColor = 0xE74C3C
)

// Reply sends plain text to the channel the command came from.
func (mc *MessageContext) Reply(ctx context.Context, content string) error {
	return mc.Send(ctx, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
}

func (mc *MessageContext) ReplyEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	return mc.Send(ctx, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
}

func (mc *MessageContext) ReplyError(ctx context.Context, description string) error {
	return mc.ReplyEmbed(ctx, &discordgo.MessageEmbed{
		Description: description,
		Color:       ErrorColor,
	})
}

func (mc *MessageContext) Send(ctx context.Context, payload *discordgo.MessageSend) error {
	_, err := mc.API.ChannelMessageSendComplex(mc.Event.ChannelID, payload, discordgo.WithContext(ctx))
	return err
}

// React adds emoji to the invoking message.
func (mc *MessageContext) React(ctx context.Context, emoji string) error {
	return mc.API.MessageReactionAdd(mc.Event.ChannelID, mc.Event.ID, emoji, discordgo.WithContext(ctx))
}
