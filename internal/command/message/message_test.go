package message

import (
	"context"
	"errors"
	"strings"
	"testing"

	"botstone/internal/command"
	"botstone/internal/command/commandtest"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	target = "222222222222222222"
	admin  = "admin"
)

type fakeComposer struct {
	payload *discordgo.MessageSend
	err     error
	calls   int
}

func (f *fakeComposer) Compose(context.Context, string, string) (*discordgo.MessageSend, error) {
	f.calls++
	return f.payload, f.err
}

func run(t *testing.T, api *commandtest.API, composer command.Composer, userID, rest string) error {
	t.Helper()
	c, ok := cmd.DefaultRegistry.Lookup("message")
	require.True(t, ok)
	mc := &command.MessageContext{
		API:      api,
		Event:    commandtest.Event("g1", "c1", userID, ".message "+rest),
		Composer: composer,
		Registry: cmd.DefaultRegistry,
		Prefix:   ".",
		Rest:     rest,
	}
	return c.Run(context.Background(), &cmd.Invocation{Name: "message", Args: strings.Fields(rest), Data: mc})
}

func newAPI() *commandtest.API {
	api := commandtest.NewAPI()
	api.Permissions[admin] = discordgo.PermissionAdministrator
	api.AddChannel("g1", target)
	return api
}

func TestSendFromText(t *testing.T) {
	api := newAPI()
	composer := &fakeComposer{}

	err := run(t, api, composer, admin, "send <#"+target+"> {embed: {colour: \"RED\", description: \"Visit us\", footer: \"Created with <3\"}}")
	require.NoError(t, err)

	sent := api.SentTo(target)
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Embeds, 1)
	assert.Equal(t, 0xE74C3C, sent[0].Embeds[0].Color)
	assert.Equal(t, "Created with <3", sent[0].Embeds[0].Footer.Text)
	assert.Equal(t, 0, composer.calls)
	require.Len(t, api.Reactions, 1)
	assert.Equal(t, confirmEmoji, api.Reactions[0].Emoji)
}

func TestSendPlainText(t *testing.T) {
	api := newAPI()
	require.NoError(t, run(t, api, nil, admin, "new "+target+" Our website: https://www.example.com"))

	sent := api.SentTo(target)
	require.Len(t, sent, 1)
	assert.Equal(t, "Our website: https://www.example.com", sent[0].Content)
}

func TestSendReportsGrammarErrors(t *testing.T) {
	api := newAPI()
	require.NoError(t, run(t, api, nil, admin, "send <#"+target+"> {embed: {colour: \"#12\"}}"))

	assert.Empty(t, api.SentTo(target))
	reply := api.SentTo("c1")
	require.Len(t, reply, 1)
	assert.Contains(t, reply[0].Embeds[0].Description, "#12")
}

func TestSendRefusesEmptyMessage(t *testing.T) {
	api := newAPI()
	require.NoError(t, run(t, api, nil, admin, "send <#"+target+"> {}"))

	assert.Empty(t, api.SentTo(target))
	assert.Contains(t, api.SentTo("c1")[0].Content, "empty")
}

func TestSendUsesBuilderWithoutText(t *testing.T) {
	api := newAPI()
	composer := &fakeComposer{payload: &discordgo.MessageSend{Content: "built"}}

	require.NoError(t, run(t, api, composer, admin, "send <#"+target+">"))
	assert.Equal(t, 1, composer.calls)
	require.Len(t, api.SentTo(target), 1)
	assert.Equal(t, "built", api.SentTo(target)[0].Content)
}

func TestSendBuilderCancelled(t *testing.T) {
	api := newAPI()
	composer := &fakeComposer{}

	require.NoError(t, run(t, api, composer, admin, "send <#"+target+">"))
	assert.Empty(t, api.SentTo(target))
	assert.Contains(t, api.SentTo("c1")[0].Content, "nothing was sent")
}

func TestSendBuilderFailure(t *testing.T) {
	boom := errors.New("gateway closed")
	err := run(t, newAPI(), &fakeComposer{err: boom}, admin, "send <#"+target+">")
	assert.ErrorIs(t, err, boom)
}

func TestSendRejectsBadChannel(t *testing.T) {
	api := newAPI()
	require.NoError(t, run(t, api, nil, admin, "send #general hello"))
	assert.Contains(t, api.SentTo("c1")[0].Content, "Not a valid channel mention")
}

func TestRefusesChannelOfAnotherGuild(t *testing.T) {
	const foreign = "444444444444444444"
	api := newAPI()
	api.AddChannel("g2", foreign)
	api.Messages["333333333333333333"] = &discordgo.Message{ID: "333333333333333333", ChannelID: foreign}

	require.NoError(t, run(t, api, nil, admin, "send <#"+foreign+"> hello"))
	require.NoError(t, run(t, api, nil, admin, "edit <#"+foreign+"> 333333333333333333 hello"))
	require.NoError(t, run(t, api, nil, admin, "send <#555555555555555555> hello"))

	assert.Empty(t, api.SentTo(foreign))
	assert.Empty(t, api.Edits)
	assert.Empty(t, api.Reactions)
	replies := api.SentTo("c1")
	require.Len(t, replies, 3)
	for _, r := range replies {
		assert.Contains(t, r.Embeds[0].Description, "is not a channel of this server")
	}
}

func TestSendRequiresAdministrator(t *testing.T) {
	api := newAPI()
	require.NoError(t, run(t, api, nil, "member", "send <#"+target+"> hello"))
	assert.Empty(t, api.SentTo(target))
	assert.Contains(t, api.SentTo("c1")[0].Embeds[0].Description, "Administrator")
}

func TestEdit(t *testing.T) {
	api := newAPI()
	existing := &discordgo.Message{ID: "333333333333333333", ChannelID: target, Content: "old"}
	api.Messages[existing.ID] = existing

	require.NoError(t, run(t, api, nil, admin, "update <#"+target+"> "+existing.ID+" {content: \"new\"}"))

	require.Len(t, api.Edits, 1)
	edit := api.Edits[0]
	assert.Equal(t, target, edit.Channel)
	assert.Equal(t, existing.ID, edit.ID)
	require.NotNil(t, edit.Content)
	assert.Equal(t, "new", *edit.Content)
	require.NotNil(t, edit.Embeds, "embeds are cleared when the new message has none")
	assert.Empty(t, edit.Embeds)
}

func TestEditUnknownMessage(t *testing.T) {
	api := newAPI()
	require.NoError(t, run(t, api, nil, admin, "edit <#"+target+"> 333333333333333333 hi"))

	assert.Empty(t, api.Edits)
	assert.Contains(t, api.SentTo("c1")[0].Embeds[0].Description, "Unable to find message")
}

func TestUnknownSubcommand(t *testing.T) {
	api := newAPI()
	require.NoError(t, run(t, api, nil, admin, "delete"))
	assert.Contains(t, api.SentTo("c1")[0].Content, "subcommands")
}
