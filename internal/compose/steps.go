package compose

import (
	"strings"

	"botstone/internal/richmsg"
)

// Step is one field of the message the wizard asks for. Apply writes the
// operator's reply into the builder; returning an error re-asks the step.
type Step struct {
	Name   string
	Prompt string
	Apply  func(b *richmsg.Message, text string) error
}

// DefaultSteps asks for the content first, then the embed parts.
var DefaultSteps = []Step{
	{
		Name:   "content",
		Prompt: "What should the content of the message be?",
		Apply: func(b *richmsg.Message, text string) error {
			b.Content = &text
			return nil
		},
	},
	{
		Name:   "description",
		Prompt: "What should the embed description be?",
		Apply: func(b *richmsg.Message, text string) error {
			b.EnsureEmbed().Description = &text
			return nil
		},
	},
	{
		Name:   "colour",
		Prompt: "What colour should the embed have? Use a name such as `RED` or a hex value such as `#e74c3c`.",
		Apply: func(b *richmsg.Message, text string) error {
			spec := richmsg.NamedColour(strings.TrimSpace(text))
			if _, err := richmsg.Resolve(spec); err != nil {
				return err
			}
			b.EnsureEmbed().Colour = &spec
			return nil
		},
	},
	{
		Name:   "footer",
		Prompt: "What should the embed footer say?",
		Apply: func(b *richmsg.Message, text string) error {
			b.EnsureEmbed().Footer = &richmsg.FooterSpec{TextOnly: &text}
			return nil
		},
	},
}
