// Package compose runs the interactive message wizard: a sequence of prompt
// steps whose replies accumulate into a rich message.
package compose

import (
	"context"
	"fmt"
	"log"
	"time"

	"botstone/internal/prompt"
	"botstone/internal/richmsg"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 300 * time.Second
	usageColour    = 0x7289DA
	emptyPreview   = "*The message is empty so far.*"
)

// Sender posts a message to a channel and returns it.
type Sender interface {
	Send(ctx context.Context, channelID string, payload *discordgo.MessageSend) (*discordgo.Message, error)
}

// StepAwaiter resolves one prompt step. *prompt.Prompter implements it.
type StepAwaiter interface {
	AwaitStep(ctx context.Context, prompt *discordgo.Message, userID string, timeout time.Duration) (prompt.Result, error)
}

type Composer struct {
	sender  Sender
	awaiter StepAwaiter
	steps   []Step
	timeout time.Duration
}

type Option func(*Composer)

// WithSteps replaces DefaultSteps.
func WithSteps(steps []Step) Option {
	return func(c *Composer) { c.steps = steps }
}

// WithTimeout sets the per-step timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Composer) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func New(sender Sender, awaiter StepAwaiter, opts ...Option) *Composer {
	c := &Composer{
		sender:  sender,
		awaiter: awaiter,
		steps:   DefaultSteps,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose walks userID through the steps in channelID. A nil payload with a
// nil error means the session was cancelled or timed out; nothing should be
// sent in that case.
func (c *Composer) Compose(ctx context.Context, channelID, userID string) (*discordgo.MessageSend, error) {
	session := uuid.NewString()
	log.Printf("[INFO] Compose %s: started by %s in channel %s", session, userID, channelID)

	if err := c.send(ctx, channelID, usage(), "send usage"); err != nil {
		return nil, err
	}

	builder := &richmsg.Message{}
	for i := 0; i < len(c.steps); {
		step := c.steps[i]

		msg, err := c.sender.Send(ctx, channelID, &discordgo.MessageSend{Content: step.Prompt})
		if err != nil {
			return nil, &prompt.TransportError{Op: "send prompt " + step.Name, Err: err}
		}

		res, err := c.awaiter.AwaitStep(ctx, msg, userID, c.timeout)
		if err != nil {
			return nil, fmt.Errorf("compose step %s: %w", step.Name, err)
		}
		log.Printf("[DEBUG] Compose %s: step %s -> %s", session, step.Name, res.Kind)

		switch res.Kind {
		case prompt.Message:
			if err := step.Apply(builder, res.Text); err != nil {
				if err := c.send(ctx, channelID, &discordgo.MessageSend{Content: fmt.Sprintf("That did not work: %v", err)}, "send step error"); err != nil {
					return nil, err
				}
				continue
			}
			i++
		case prompt.Skip:
			i++
		case prompt.Preview:
			if err := c.preview(ctx, channelID, builder); err != nil {
				return nil, err
			}
		case prompt.Accept:
			log.Printf("[INFO] Compose %s: accepted at step %s", session, step.Name)
			return finish(builder)
		case prompt.Cancel, prompt.TimedOut:
			log.Printf("[INFO] Compose %s: %s at step %s", session, res.Kind, step.Name)
			return nil, nil
		default:
			return nil, &prompt.ImpossibleError{Err: fmt.Errorf("unexpected prompt result %d", res.Kind)}
		}
	}

	log.Printf("[INFO] Compose %s: all steps completed", session)
	return finish(builder)
}

func (c *Composer) preview(ctx context.Context, channelID string, builder *richmsg.Message) error {
	payload, err := richmsg.Materialize(builder)
	if err != nil {
		payload = &discordgo.MessageSend{Content: fmt.Sprintf("Unable to render the preview: %v", err)}
	} else if richmsg.IsEmpty(payload) {
		payload = &discordgo.MessageSend{Content: emptyPreview}
	}
	return c.send(ctx, channelID, payload, "send preview")
}

func (c *Composer) send(ctx context.Context, channelID string, payload *discordgo.MessageSend, op string) error {
	if _, err := c.sender.Send(ctx, channelID, payload); err != nil {
		return &prompt.TransportError{Op: op, Err: err}
	}
	return nil
}

func finish(builder *richmsg.Message) (*discordgo.MessageSend, error) {
	payload, err := richmsg.Materialize(builder)
	if err != nil {
		return nil, fmt.Errorf("materialize composed message: %w", err)
	}
	return payload, nil
}

func usage() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Message builder",
			Color:       usageColour,
			Description: usageText,
		}},
	}
}

var usageText = fmt.Sprintf(
	"Reply to each question with the text you want, or react to the question:\n"+
		"%s accept the message as it is now\n"+
		"%s cancel without sending anything\n"+
		"%s preview the message so far\n"+
		"%s skip this part\n"+
		"Each question times out after a few minutes without an answer.",
	prompt.EmojiAccept, prompt.EmojiCancel, prompt.EmojiPreview, prompt.EmojiSkip,
)
