// Package prompt implements a single interactive step: wait for either a text
// reply or a control reaction from one user, whichever comes first.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ReplyWaiter waits for the next message from userID in the prompt's channel.
type ReplyWaiter interface {
	AwaitReply(ctx context.Context, prompt *discordgo.Message, userID string, timeout time.Duration) (string, error)
}

// ReactionWaiter waits for userID to react to the prompt with one of emoji.
type ReactionWaiter interface {
	AwaitReaction(ctx context.Context, prompt *discordgo.Message, userID string, emoji []string, timeout time.Duration) (string, error)
}

// Prompter runs prompt steps against a pair of waiters.
type Prompter struct {
	replies   ReplyWaiter
	reactions ReactionWaiter
}

func New(replies ReplyWaiter, reactions ReactionWaiter) *Prompter {
	return &Prompter{replies: replies, reactions: reactions}
}

type outcome struct {
	result Result
	err    error
}

// AwaitStep races a text reply against a control reaction on prompt. The
// first waiter to finish decides the result; the other one is abandoned and
// its step context cancelled when AwaitStep returns.
func (p *Prompter) AwaitStep(ctx context.Context, prompt *discordgo.Message, userID string, timeout time.Duration) (Result, error) {
	stepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Both sends must succeed without a reader so the loser never blocks.
	done := make(chan outcome, 2)

	go func() {
		text, err := p.replies.AwaitReply(stepCtx, prompt, userID, timeout)
		done <- replyOutcome(text, err)
	}()
	go func() {
		emoji, err := p.reactions.AwaitReaction(stepCtx, prompt, userID, ControlEmoji(), timeout)
		done <- reactionOutcome(emoji, err)
	}()

	o := <-done
	return o.result, o.err
}

func replyOutcome(text string, err error) outcome {
	switch {
	case err == nil:
		return outcome{result: TextResult(text)}
	case errors.Is(err, ErrTimeout):
		return outcome{result: Result{Kind: TimedOut}}
	default:
		return outcome{err: transport("await reply", err)}
	}
}

func reactionOutcome(emoji string, err error) outcome {
	switch {
	case err == nil:
		kind, ok := FromEmoji(emoji)
		if !ok {
			ierr := &ImpossibleError{Err: fmt.Errorf("unknown reaction %q", emoji)}
			log.Printf("[BUG] %v", ierr)
			return outcome{err: ierr}
		}
		return outcome{result: Result{Kind: kind}}
	case errors.Is(err, ErrTimeout):
		return outcome{result: Result{Kind: TimedOut}}
	default:
		return outcome{err: transport("await reaction", err)}
	}
}
