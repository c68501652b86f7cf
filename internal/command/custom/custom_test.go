package custom

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"botstone/datastore"
	"botstone/internal/command"
	"botstone/internal/command/commandtest"
	"botstone/internal/storage"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const admin = "admin"

type harness struct {
	api   *commandtest.API
	store *storage.Storage
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ds, err := datastore.NewWithConfig(&datastore.Config{FilePath: filepath.Join(t.TempDir(), "db.json")})
	require.NoError(t, err)
	store := storage.NewWithStore(ds)
	t.Cleanup(func() { store.Close() })

	api := commandtest.NewAPI()
	api.Permissions[admin] = discordgo.PermissionAdministrator
	return &harness{api: api, store: store}
}

func (h *harness) messageContext(userID, content, rest string) *command.MessageContext {
	return &command.MessageContext{
		API:      h.api,
		Event:    commandtest.Event("g1", "c1", userID, content),
		Storage:  h.store,
		Registry: cmd.DefaultRegistry,
		Prefix:   ".",
		Rest:     rest,
	}
}

func (h *harness) run(t *testing.T, userID, rest string) {
	t.Helper()
	c, ok := cmd.DefaultRegistry.Lookup("command")
	require.True(t, ok)
	mc := h.messageContext(userID, ".command "+rest, rest)
	require.NoError(t, c.Run(context.Background(), &cmd.Invocation{Name: "command", Args: strings.Fields(rest), Data: mc}))
}

func (h *harness) last(t *testing.T) *discordgo.MessageSend {
	t.Helper()
	sent := h.api.SentTo("c1")
	require.NotEmpty(t, sent)
	return sent[len(sent)-1]
}

func TestSetAndFallback(t *testing.T) {
	h := newHarness(t)
	h.run(t, admin, "set Rules Be nice, {user}!")
	assert.Equal(t, "Command `rules` successfully set!", h.last(t).Content)

	handled, err := Fallback(context.Background(), h.messageContext("u7", ".rules", ""), "RULES")
	require.NoError(t, err)
	require.True(t, handled)

	reply := h.last(t)
	assert.Equal(t, "Be nice, <@u7>!", reply.Content)
	require.NotNil(t, reply.AllowedMentions)
	assert.Equal(t, []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}, reply.AllowedMentions.Parse)
}

func TestFallbackSendsRichContent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.SetCustomCommand("g1", "welcome", "{embed: {author: {name: \"Staff\"}, description: \"Welcome {user}\"}}"))

	handled, err := Fallback(context.Background(), h.messageContext("u7", ".welcome", ""), "welcome")
	require.NoError(t, err)
	require.True(t, handled)

	reply := h.last(t)
	require.Len(t, reply.Embeds, 1)
	require.NotNil(t, reply.Embeds[0].Author)
	assert.Equal(t, "Staff", reply.Embeds[0].Author.Name)
	assert.Equal(t, "Welcome <@u7>", reply.Embeds[0].Description)
}

func TestFallbackUnknownCommand(t *testing.T) {
	h := newHarness(t)
	handled, err := Fallback(context.Background(), h.messageContext("u7", ".nothing", ""), "nothing")
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, h.api.SentTo("c1"))
}

func TestSetRefusesBuiltinNames(t *testing.T) {
	h := newHarness(t)
	h.run(t, admin, "set command hello")
	assert.Contains(t, h.last(t).Content, "already hardcoded")

	names, err := h.store.CustomCommandNames("g1")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSetValidatesRichContent(t *testing.T) {
	h := newHarness(t)
	h.run(t, admin, "set broken {embed: {colour: \"nope\"}}")
	assert.Contains(t, h.last(t).Embeds[0].Description, "Unable to read the message")

	_, ok, err := h.store.CustomCommand("g1", "broken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetRequiresAdministrator(t *testing.T) {
	h := newHarness(t)
	h.run(t, "member", "set rules hello")
	assert.Contains(t, h.last(t).Embeds[0].Description, "Administrator")

	_, ok, err := h.store.CustomCommand("g1", "rules")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.SetCustomCommand("g1", "rules", "hello"))

	h.run(t, admin, "remove rules")
	assert.Equal(t, "Command `rules` successfully removed!", h.last(t).Content)
	h.run(t, admin, "remove rules")
	assert.Contains(t, h.last(t).Content, "no custom command")
}

func TestListIsOpenToEveryone(t *testing.T) {
	h := newHarness(t)
	h.run(t, "member", "list")
	assert.Contains(t, h.last(t).Embeds[0].Description, "no custom commands")

	require.NoError(t, h.store.SetCustomCommand("g1", "rules", "hello"))
	require.NoError(t, h.store.SetCustomCommand("g1", "faq", "hello"))
	h.run(t, "member", "list")

	embed := h.last(t).Embeds[0]
	assert.Equal(t, "Custom commands", embed.Title)
	assert.Equal(t, "`.faq`\n`.rules`\n", embed.Description)
}

func TestUnknownSubcommand(t *testing.T) {
	h := newHarness(t)
	h.run(t, admin, "")
	assert.Equal(t, "Please use one of the subcommands! (set, remove, list)", h.last(t).Content)
}
