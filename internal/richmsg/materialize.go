package richmsg

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Materialize converts a parsed message into a send payload. Only the colour
// is validated here; URL format and length limits are left to Discord.
func Materialize(msg *Message) (*discordgo.MessageSend, error) {
	payload := &discordgo.MessageSend{}
	if msg == nil {
		return payload, nil
	}
	if msg.Content != nil {
		payload.Content = *msg.Content
	}
	if msg.Embed != nil {
		embed, err := materializeEmbed(msg.Embed)
		if err != nil {
			return nil, err
		}
		payload.Embeds = []*discordgo.MessageEmbed{embed}
	}
	return payload, nil
}

// ParseAndMaterialize is the direct textual path: grammar in, payload out.
func ParseAndMaterialize(text string) (*discordgo.MessageSend, error) {
	msg, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Materialize(msg)
}

// EditFromSend converts a send payload into an edit that replaces both the
// content and the embeds of an existing message.
func EditFromSend(channelID, messageID string, payload *discordgo.MessageSend) *discordgo.MessageEdit {
	embeds := payload.Embeds
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	return discordgo.NewMessageEdit(channelID, messageID).
		SetContent(payload.Content).
		SetEmbeds(embeds)
}

// LooksStructured reports whether text is written as a message object, bare
// or inside a code fence, rather than as plain content.
func LooksStructured(text string) bool {
	return strings.HasPrefix(stripCodeFence(text), "{")
}

// ParseContent materializes structured text and sends anything else verbatim
// as the message content.
func ParseContent(text string) (*discordgo.MessageSend, error) {
	if LooksStructured(text) {
		return ParseAndMaterialize(text)
	}
	return &discordgo.MessageSend{Content: strings.TrimSpace(text)}, nil
}

// IsEmpty reports whether the payload has nothing Discord would display.
func IsEmpty(p *discordgo.MessageSend) bool {
	return p == nil || (p.Content == "" && len(p.Embeds) == 0)
}

func materializeEmbed(e *Embed) (*discordgo.MessageEmbed, error) {
	out := &discordgo.MessageEmbed{}
	if e.Colour != nil {
		colour, err := Resolve(*e.Colour)
		if err != nil {
			return nil, err
		}
		out.Color = colour
	}
	if e.Description != nil {
		out.Description = *e.Description
	}
	for _, f := range e.Fields.Normalize() {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.Footer != nil {
		footer := e.Footer.Normalize()
		out.Footer = &discordgo.MessageEmbedFooter{}
		if footer.Text != nil {
			out.Footer.Text = *footer.Text
		}
		if footer.URL != nil {
			out.Footer.IconURL = *footer.URL
		}
	}
	if e.Author != nil {
		out.Author = &discordgo.MessageEmbedAuthor{Name: e.Author.Name}
		if e.Author.Link != nil {
			out.Author.URL = *e.Author.Link
		}
		if e.Author.Icon != nil {
			out.Author.IconURL = *e.Author.Icon
		}
	}
	return out, nil
}
