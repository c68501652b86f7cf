package prompt

// Kind is the variant of a prompt step result.
type Kind int

const (
	Accept Kind = iota
	Cancel
	Preview
	Skip
	TimedOut
	Message
)

func (k Kind) String() string {
	switch k {
	case Accept:
		return "accept"
	case Cancel:
		return "cancel"
	case Preview:
		return "preview"
	case Skip:
		return "skip"
	case TimedOut:
		return "timed out"
	case Message:
		return "message"
	}
	return "unknown"
}

// Result is what one prompt step produced. Text is set only for Message.
type Result struct {
	Kind Kind
	Text string
}

func TextResult(text string) Result { return Result{Kind: Message, Text: text} }

// Control emoji, added as reactions on every step prompt.
const (
	EmojiAccept  = "\u2705"     // :white_check_mark:
	EmojiCancel  = "\u274c"     // :x:
	EmojiPreview = "\U0001f441" // :eye:
	EmojiSkip    = "\u23e9"     // :fast_forward:
)

var controls = []struct {
	kind  Kind
	emoji string
}{
	{Accept, EmojiAccept},
	{Cancel, EmojiCancel},
	{Preview, EmojiPreview},
	{Skip, EmojiSkip},
}

// Emoji returns the control emoji for k. TimedOut and Message have none.
func (k Kind) Emoji() (string, bool) {
	for _, c := range controls {
		if c.kind == k {
			return c.emoji, true
		}
	}
	return "", false
}

// ControlEmoji lists the recognised control emoji in display order.
func ControlEmoji() []string {
	out := make([]string, 0, len(controls))
	for _, c := range controls {
		out = append(out, c.emoji)
	}
	return out
}

// FromEmoji maps a reaction back to its control kind.
func FromEmoji(emoji string) (Kind, bool) {
	for _, c := range controls {
		if c.emoji == emoji {
			return c.kind, true
		}
	}
	return 0, false
}
