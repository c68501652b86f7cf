package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"botstone/internal/prompt"

	"github.com/bwmarrin/discordgo"
)

// Reactor adds a reaction to a message.
type Reactor interface {
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

// Collector hands gateway messages and reactions to whoever is waiting for
// them. It implements prompt.ReplyWaiter and prompt.ReactionWaiter.
type Collector struct {
	reactor Reactor

	mu        sync.Mutex
	nextID    uint64
	replies   map[uint64]*replyWait
	reactions map[uint64]*reactionWait
}

type replyWait struct {
	channelID string
	userID    string
	ch        chan string
}

type reactionWait struct {
	messageID string
	userID    string
	emoji     map[string]string // normalized -> as requested
	ch        chan string
}

var (
	_ prompt.ReplyWaiter    = (*Collector)(nil)
	_ prompt.ReactionWaiter = (*Collector)(nil)
)

func NewCollector(reactor Reactor) *Collector {
	return &Collector{
		reactor:   reactor,
		replies:   make(map[uint64]*replyWait),
		reactions: make(map[uint64]*reactionWait),
	}
}

// AwaitReply waits for the next message userID sends in the prompt's channel.
func (c *Collector) AwaitReply(ctx context.Context, p *discordgo.Message, userID string, timeout time.Duration) (string, error) {
	w := &replyWait{channelID: p.ChannelID, userID: userID, ch: make(chan string, 1)}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.replies[id] = w
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.replies, id)
		c.mu.Unlock()
	}()

	return wait(ctx, w.ch, timeout)
}

// AwaitReaction adds emoji to the prompt and waits for userID to pick one of
// them. The returned emoji is spelled exactly as requested.
func (c *Collector) AwaitReaction(ctx context.Context, p *discordgo.Message, userID string, emoji []string, timeout time.Duration) (string, error) {
	w := &reactionWait{messageID: p.ID, userID: userID, emoji: make(map[string]string, len(emoji)), ch: make(chan string, 1)}
	for _, e := range emoji {
		w.emoji[normalizeEmoji(e)] = e
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.reactions[id] = w
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.reactions, id)
		c.mu.Unlock()
	}()

	// The timer starts before the reactions are added so a slow API does not
	// extend the step.
	deadline := time.Now().Add(timeout)
	for _, e := range emoji {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := c.reactor.MessageReactionAdd(p.ChannelID, p.ID, e, discordgo.WithContext(ctx)); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("add reaction %s: %w", e, err)
		}
	}

	return wait(ctx, w.ch, time.Until(deadline))
}

func wait(ctx context.Context, ch <-chan string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		return "", prompt.ErrTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v, nil
	case <-timer.C:
		return "", prompt.ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// HandleMessageCreate delivers m to the reply waiters it matches and reports
// whether any did.
func (c *Collector) HandleMessageCreate(m *discordgo.MessageCreate) bool {
	if m.Author == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delivered := false
	for _, w := range c.replies {
		if w.channelID != m.ChannelID || w.userID != m.Author.ID {
			continue
		}
		select {
		case w.ch <- m.Content:
			delivered = true
		default:
		}
	}
	return delivered
}

// HandleReactionAdd delivers r to the reaction waiters it matches.
func (c *Collector) HandleReactionAdd(r *discordgo.MessageReactionAdd) bool {
	if r.MessageReaction == nil {
		return false
	}
	got := normalizeEmoji(r.Emoji.Name)

	c.mu.Lock()
	defer c.mu.Unlock()

	delivered := false
	for _, w := range c.reactions {
		if w.messageID != r.MessageID || w.userID != r.UserID {
			continue
		}
		requested, ok := w.emoji[got]
		if !ok {
			continue
		}
		select {
		case w.ch <- requested:
			delivered = true
		default:
		}
	}
	return delivered
}

// Pending reports the number of registered waiters.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.replies) + len(c.reactions)
}

// normalizeEmoji drops the emoji presentation selector, which clients add or
// omit inconsistently.
func normalizeEmoji(e string) string {
	return strings.ReplaceAll(e, "\ufe0f", "")
}
