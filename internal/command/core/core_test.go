package core

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"botstone/datastore"
	"botstone/internal/command"
	"botstone/internal/command/commandtest"
	"botstone/internal/storage"
	"botstone/internal/version"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	api   *commandtest.API
	store *storage.Storage

	developerID string
	supportURL  string
	shutdown    func()
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ds, err := datastore.NewWithConfig(&datastore.Config{FilePath: filepath.Join(t.TempDir(), "db.json")})
	require.NoError(t, err)
	store := storage.NewWithStore(ds)
	t.Cleanup(func() { store.Close() })
	return &harness{api: commandtest.NewAPI(), store: store}
}

// run invokes a registered command the way the dispatcher does.
func (h *harness) run(t *testing.T, userID, line string) {
	t.Helper()
	name, rest := command.NextArg(line)
	c, ok := cmd.DefaultRegistry.Lookup(name)
	require.True(t, ok, name)
	mc := &command.MessageContext{
		API:       h.api,
		Event:     commandtest.Event("g1", "c1", userID, "."+line),
		Storage:   h.store,
		Registry:  cmd.DefaultRegistry,
		Prefix:    ".",
		GuildName: "Test Server",
		Rest:      rest,

		DeveloperID: h.developerID,
		SupportURL:  h.supportURL,
		Shutdown:    h.shutdown,
	}
	require.NoError(t, c.Run(context.Background(), &cmd.Invocation{Name: name, Args: strings.Fields(rest), Data: mc}))
}

func (h *harness) last(t *testing.T) *discordgo.MessageSend {
	t.Helper()
	sent := h.api.SentTo("c1")
	require.NotEmpty(t, sent)
	return sent[len(sent)-1]
}

func TestPing(t *testing.T) {
	h := newHarness(t)
	h.api.Latency = 42 * time.Millisecond
	h.run(t, "u1", "ping")

	embed := h.last(t).Embeds[0]
	assert.Contains(t, embed.Title, "Pong")
	assert.Equal(t, "Latency: 42ms", embed.Description)
}

func TestHelpListsCommandsByCategory(t *testing.T) {
	h := newHarness(t)
	h.run(t, "u1", "help")

	desc := h.last(t).Embeds[0].Description
	for _, name := range []string{".ping", ".help", ".info", ".react", ".prefix"} {
		assert.Contains(t, desc, "`"+name+"`")
	}
	assert.Less(t, strings.Index(desc, "Information"), strings.Index(desc, "Settings"))
}

func TestHelpForOneCommand(t *testing.T) {
	h := newHarness(t)
	h.run(t, "u1", "help version")

	embed := h.last(t).Embeds[0]
	assert.Equal(t, "info", embed.Title)
	require.GreaterOrEqual(t, len(embed.Fields), 2)
	assert.Equal(t, "`.info`", embed.Fields[0].Value)
	assert.Contains(t, embed.Fields[1].Value, "about")

	h.run(t, "u1", "help nothing")
	assert.Contains(t, h.last(t).Embeds[0].Description, "Unknown command")
}

func TestInfoEmbed(t *testing.T) {
	e := infoEmbed(version.Info{Version: "v1.2.3", Commit: "0123456789", Modified: true, GoVersion: "go1.24"})
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "v1.2.3", e.Fields[0].Value)
	assert.Equal(t, "0123456 (modified)", e.Fields[1].Value)
	assert.Equal(t, "unknown", e.Fields[2].Value)
}

func TestReact(t *testing.T) {
	h := newHarness(t)
	h.run(t, "u1", "react 👍")
	require.Len(t, h.api.Reactions, 1)
	assert.Equal(t, commandtest.Reaction{ChannelID: "c1", MessageID: "invoking", Emoji: "👍"}, h.api.Reactions[0])

	h.run(t, "u1", "react nope")
	assert.Len(t, h.api.Reactions, 1)
	assert.Contains(t, h.last(t).Content, "Unable to parse")
}

func TestParseEmoji(t *testing.T) {
	valid := map[string]string{
		"👍":                      "👍",
		"👍🏽":                     "👍🏽",
		"🇺🇦":                     "🇺🇦",
		"👨‍👩‍👧":                  "👨‍👩‍👧",
		"❤️":                     "❤️",
		"1️⃣":                    "1️⃣",
		"<:blob:123456789>":      "blob:123456789",
		"<a:dance_2:1234567890>": "dance_2:1234567890",
	}
	for in, want := range valid {
		got, err := ParseEmoji(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "a", "1", "#", "👍👍", "é", "<:x:1>", ":smile:"} {
		_, err := ParseEmoji(in)
		assert.Error(t, err, in)
	}
}

func TestPrefix(t *testing.T) {
	h := newHarness(t)
	h.api.Permissions["admin"] = discordgo.PermissionManageMessages
	h.run(t, "admin", "prefix !")

	assert.Equal(t, "My new prefix for `Test Server` is `!`!", h.last(t).Content)
	p, err := h.store.Prefix("g1", ".")
	require.NoError(t, err)
	assert.Equal(t, "!", p)

	h.run(t, "admin", "prefix waytoolongprefix")
	assert.Contains(t, h.last(t).Content, "at most")

	h.run(t, "admin", "prefix")
	assert.Equal(t, "My prefix here is `.`.", h.last(t).Content, "the context carries the resolved prefix")
}

func TestPrefixRequiresManageMessages(t *testing.T) {
	h := newHarness(t)
	h.run(t, "nobody", "prefix !")

	assert.Contains(t, h.last(t).Embeds[0].Description, "Manage Messages")
	p, err := h.store.Prefix("g1", ".")
	require.NoError(t, err)
	assert.Equal(t, ".", p)
}

func TestQuitIsDeveloperOnly(t *testing.T) {
	h := newHarness(t)
	stopped := 0
	h.developerID = "dev"
	h.shutdown = func() { stopped++ }

	h.run(t, "u1", "quit")
	assert.Equal(t, 0, stopped)
	assert.Contains(t, h.last(t).Embeds[0].Description, "Only the bot developer")

	h.run(t, "dev", "quit")
	assert.Equal(t, 1, stopped)
	assert.Equal(t, "Shutting down!", h.last(t).Content)
}

func TestQuitWithoutDeveloperConfigured(t *testing.T) {
	h := newHarness(t)
	stopped := false
	h.shutdown = func() { stopped = true }

	h.run(t, "", "quit")
	assert.False(t, stopped, "an empty DEVELOPER_ID matches nobody")
}

func TestSupport(t *testing.T) {
	h := newHarness(t)
	h.run(t, "u1", "support")
	embed := h.last(t).Embeds[0]
	assert.Equal(t, "Unavailable", embed.Fields[0].Value)
	assert.Contains(t, embed.Fields[1].Value, "`.help <command>`")

	h.supportURL = "https://discord.gg/botstone"
	h.run(t, "u1", "support")
	assert.Equal(t, "https://discord.gg/botstone", h.last(t).Embeds[0].Fields[0].Value)
}

func TestLogShowsRecentCommands(t *testing.T) {
	h := newHarness(t)
	h.api.Permissions["admin"] = discordgo.PermissionManageMessages

	h.run(t, "admin", "log")
	assert.Equal(t, "No command history found.", h.last(t).Content)

	h.run(t, "u1", "ping")
	h.run(t, "u1", "react 👍")
	h.run(t, "admin", "history")

	out := h.last(t).Content
	assert.True(t, strings.HasPrefix(out, "```md\n"))
	assert.Contains(t, out, "useru1")
	assert.Less(t, strings.Index(out, ".react 👍"), strings.Index(out, ".ping"), "newest first")
	assert.Contains(t, out, ".log", "the first log call is recorded too")
}

func TestLogRequiresManageMessages(t *testing.T) {
	h := newHarness(t)
	h.run(t, "u1", "log")
	assert.Contains(t, h.last(t).Embeds[0].Description, "Manage Messages")
}
