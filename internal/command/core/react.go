package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"botstone/internal/command"
	"botstone/internal/middleware"
	"botstone/pkg/cmd"

	"github.com/rivo/uniseg"
)

const keycapBases = "0123456789#*"

var (
	errNotEmoji   = errors.New("not a single emoji")
	customEmojiRe = regexp.MustCompile(`^<(a?):(\w{2,32}):(\d+)>$`)
)

type ReactCommand struct{}

func (c *ReactCommand) Name() string             { return "react" }
func (c *ReactCommand) Description() string      { return "React to your message with an emoji" }
func (c *ReactCommand) Aliases() []string        { return nil }
func (c *ReactCommand) Category() string         { return "📢 Utilities" }
func (c *ReactCommand) Usage() string            { return "react <emoji>" }
func (c *ReactCommand) UserPermissions() []int64 { return nil }

func (c *ReactCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}
	if len(inv.Args) != 1 {
		return mc.Reply(ctx, fmt.Sprintf("Usage: `%s%s`", mc.Prefix, c.Usage()))
	}

	emoji, err := ParseEmoji(inv.Args[0])
	if err != nil {
		return mc.Reply(ctx, fmt.Sprintf("Unable to parse %q as emoji", inv.Args[0]))
	}
	return mc.React(ctx, emoji)
}

// ParseEmoji validates arg as one unicode emoji or a custom emoji mention and
// returns it in the form the reaction endpoint expects.
func ParseEmoji(arg string) (string, error) {
	if m := customEmojiRe.FindStringSubmatch(arg); m != nil {
		return m[2] + ":" + m[3], nil
	}
	if arg == "" || uniseg.GraphemeClusterCount(arg) != 1 {
		return "", errNotEmoji
	}

	first, _ := utf8.DecodeRuneInString(arg)
	switch {
	case strings.ContainsRune(keycapBases, first):
		if !strings.ContainsRune(arg, '\u20e3') {
			return "", errNotEmoji
		}
	case !isEmojiRune(first):
		return "", errNotEmoji
	}
	return arg, nil
}

// isEmojiRune covers the blocks emoji are allocated in.
func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2300 && r <= 0x23FF:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	case r >= 0x2190 && r <= 0x21FF:
		return true
	case r >= 0x25A0 && r <= 0x25FF:
		return true
	}
	switch r {
	case 0x00A9, 0x00AE, 0x203C, 0x2049, 0x2122, 0x2139, 0x24C2, 0x3030, 0x303D, 0x3297, 0x3299:
		return true
	}
	return false
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&ReactCommand{},
		middleware.WithCommandLogger(),
	))
}
