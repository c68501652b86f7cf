package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"botstone/internal/command"
	"botstone/internal/storage"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// FallbackFunc handles a prefixed name no registered command claims. It
// reports whether it did anything.
type FallbackFunc func(ctx context.Context, mc *command.MessageContext, name string) (bool, error)

// Dispatcher turns incoming messages into command invocations.
type Dispatcher struct {
	Registry      *cmd.Registry
	Storage       *storage.Storage
	Composer      command.Composer
	Collector     *Collector
	DefaultPrefix string
	Fallback      FallbackFunc
	DeveloperID   string
	SupportURL    string
	Shutdown      func()
}

// Names resolves display names for history records.
type Names func(guildID, channelID string) (guildName, channelName string)

// HandleMessage routes m: replies awaited by a running prompt go to the
// collector, prefixed messages run a command.
func (d *Dispatcher) HandleMessage(ctx context.Context, api command.API, m *discordgo.MessageCreate, botID string, names Names) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == botID {
		return
	}
	if d.Collector != nil && d.Collector.HandleMessageCreate(m) {
		return
	}

	prefix := d.DefaultPrefix
	if m.GuildID != "" && d.Storage != nil {
		p, err := d.Storage.Prefix(m.GuildID, d.DefaultPrefix)
		if err != nil {
			log.Printf("[WARN] Failed to read prefix for guild %s: %v", m.GuildID, err)
		}
		prefix = p
	}

	text, ok := command.StripPrefix(m.Content, prefix, botID)
	if !ok {
		return
	}
	name, rest := command.NextArg(text)
	if name == "" {
		return
	}

	mc := &command.MessageContext{
		API:      api,
		Event:    m,
		Storage:  d.Storage,
		Composer: d.Composer,
		Registry: d.Registry,
		Prefix:   prefix,
		Rest:     rest,

		DeveloperID: d.DeveloperID,
		SupportURL:  d.SupportURL,
		Shutdown:    d.Shutdown,
	}
	if names != nil {
		mc.GuildName, mc.ChannelName = names(m.GuildID, m.ChannelID)
	}

	if err := d.run(ctx, mc, name); err != nil {
		log.Printf("[ERR] Command %q triggered by %s failed: %v", name, m.Author.Username, err)
		if rerr := mc.ReplyError(ctx, fmt.Sprintf("Error running command: %v", err)); rerr != nil {
			log.Printf("[WARN] Failed to report command error: %v", rerr)
		}
		if rerr := mc.React(ctx, "\u274c"); rerr != nil {
			log.Printf("[WARN] Failed to react to failed command: %v", rerr)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, mc *command.MessageContext, name string) error {
	if c, ok := d.Registry.Lookup(name); ok {
		return c.Run(ctx, &cmd.Invocation{
			Name: strings.ToLower(name),
			Args: strings.Fields(mc.Rest),
			Data: mc,
		})
	}
	if d.Fallback != nil {
		handled, err := d.Fallback(ctx, mc, name)
		if handled || err != nil {
			return err
		}
	}
	log.Printf("[DEBUG] Unknown command %q in channel %s", name, mc.Event.ChannelID)
	return nil
}
