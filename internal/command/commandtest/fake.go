// Package commandtest provides an in-memory command.API for command tests.
package commandtest

import (
	"fmt"
	"sync"
	"time"

	"botstone/internal/command"

	"github.com/bwmarrin/discordgo"
)

type Reaction struct {
	ChannelID, MessageID, Emoji string
}

// API records every call and serves messages and permissions from maps.
type API struct {
	mu sync.Mutex

	Sent      map[string][]*discordgo.MessageSend // by channel
	Edits     []*discordgo.MessageEdit
	Reactions []Reaction

	Messages    map[string]*discordgo.Message // by message ID
	Channels    map[string]*discordgo.Channel // by channel ID
	Permissions map[string]int64              // by user ID
	Latency     time.Duration

	SendErr  error
	ReactErr error
	nextID   int
}

var _ command.API = (*API)(nil)

func NewAPI() *API {
	return &API{
		Sent:        map[string][]*discordgo.MessageSend{},
		Messages:    map[string]*discordgo.Message{},
		Channels:    map[string]*discordgo.Channel{},
		Permissions: map[string]int64{},
	}
}

func (a *API) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SendErr != nil {
		return nil, a.SendErr
	}
	a.Sent[channelID] = append(a.Sent[channelID], data)
	a.nextID++
	msg := &discordgo.Message{ID: fmt.Sprintf("sent-%d", a.nextID), ChannelID: channelID, Content: data.Content, Embeds: data.Embeds}
	a.Messages[msg.ID] = msg
	return msg, nil
}

func (a *API) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	msg, ok := a.Messages[m.ID]
	if !ok || msg.ChannelID != m.Channel {
		return nil, fmt.Errorf("HTTP 404 Not Found, message %s", m.ID)
	}
	a.Edits = append(a.Edits, m)
	return msg, nil
}

func (a *API) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	msg, ok := a.Messages[messageID]
	if !ok || msg.ChannelID != channelID {
		return nil, fmt.Errorf("HTTP 404 Not Found, message %s", messageID)
	}
	return msg, nil
}

func (a *API) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ch, ok := a.Channels[channelID]
	if !ok {
		return nil, fmt.Errorf("HTTP 404 Not Found, channel %s", channelID)
	}
	return ch, nil
}

// AddChannel makes channelID known as a text channel of guildID.
func (a *API) AddChannel(guildID, channelID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Channels[channelID] = &discordgo.Channel{ID: channelID, GuildID: guildID, Type: discordgo.ChannelTypeGuildText}
}

func (a *API) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ReactErr != nil {
		return a.ReactErr
	}
	a.Reactions = append(a.Reactions, Reaction{channelID, messageID, emojiID})
	return nil
}

func (a *API) UserChannelPermissions(userID, _ string, _ ...discordgo.RequestOption) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Permissions[userID], nil
}

func (a *API) HeartbeatLatency() time.Duration { return a.Latency }

// SentTo returns what was sent to channelID so far.
func (a *API) SentTo(channelID string) []*discordgo.MessageSend {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*discordgo.MessageSend(nil), a.Sent[channelID]...)
}

// Event builds a guild message from userID in channelID.
func Event(guildID, channelID, userID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "invoking",
		GuildID:   guildID,
		ChannelID: channelID,
		Content:   content,
		Author:    &discordgo.User{ID: userID, Username: "user" + userID},
	}}
}
