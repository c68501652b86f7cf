package discord

import (
	"context"
	"fmt"
	"log"
	"slices"

	"botstone/internal/compose"
	"botstone/internal/config"
	"botstone/internal/prompt"
	"botstone/internal/storage"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Bot is a Discord bot
type Bot struct {
	dg         *discordgo.Session
	cfg        *config.Config
	ctx        context.Context
	collector  *Collector
	dispatcher *Dispatcher
}

type Option func(*Dispatcher)

// WithFallback handles names no registered command claims.
func WithFallback(f FallbackFunc) Option {
	return func(d *Dispatcher) { d.Fallback = f }
}

// StartBot runs the bot until ctx is done or the owner asks it to quit.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage, opts ...Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := &Bot{
		cfg: cfg,
		ctx: ctx,
		dispatcher: &Dispatcher{
			Registry:      cmd.DefaultRegistry,
			Storage:       store,
			DefaultPrefix: cfg.CommandPrefix,
			DeveloperID:   cfg.DeveloperID,
			SupportURL:    cfg.SupportURL,
			Shutdown:      cancel,
		},
	}
	for _, opt := range opts {
		opt(b.dispatcher)
	}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	b.collector = NewCollector(dg)
	b.dispatcher.Collector = b.collector
	b.dispatcher.Composer = compose.New(
		NewSender(dg),
		prompt.New(b.collector, b.collector),
		compose.WithTimeout(b.cfg.PromptTimeout),
	)

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onMessageReactionAdd)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsDirectMessageReactions |
		discordgo.IntentsMessageContent
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if b.isGuildBlacklisted(m.GuildID) {
		return
	}
	b.dispatcher.HandleMessage(b.ctx, s, m, s.State.User.ID, b.names)
}

func (b *Bot) onMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	b.collector.HandleReactionAdd(r)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		b.leaveIfBlacklisted(s, g.ID, g.Name)
	}
	log.Printf("[INFO] ✅ Discord bot %v is running in %d guilds.", r.User.Username, len(r.Guilds))
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.leaveIfBlacklisted(s, g.ID, g.Name) {
		return
	}
	log.Printf("[INFO] Guild available: %s (%s)", g.ID, g.Name)
}

func (b *Bot) leaveIfBlacklisted(s *discordgo.Session, guildID, name string) bool {
	if !b.isGuildBlacklisted(guildID) {
		return false
	}
	log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", guildID, name)
	if err := s.GuildLeave(guildID); err != nil {
		log.Printf("[ERR] Failed to leave guild %s: %v", guildID, err)
	}
	return true
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return guildID != "" && slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}

// names reads guild and channel names from the state cache only.
func (b *Bot) names(guildID, channelID string) (string, string) {
	var guildName, channelName string
	if g, err := b.dg.State.Guild(guildID); err == nil {
		guildName = g.Name
	}
	if c, err := b.dg.State.Channel(channelID); err == nil {
		channelName = c.Name
	}
	return guildName, channelName
}
