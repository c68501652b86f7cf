package command

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	channelMentionRe = regexp.MustCompile(`^<#(\d+)>$`)
	snowflakeRe      = regexp.MustCompile(`^\d{15,21}$`)
	messageLinkRe    = regexp.MustCompile(`^https://(?:\w+\.)?discord(?:app)?\.com/channels/(\d+|@me)/(\d+)/(\d+)$`)
)

// StripPrefix returns the text after prefix, or after a mention of botID.
func StripPrefix(content, prefix, botID string) (string, bool) {
	if botID != "" {
		for _, mention := range []string{"<@" + botID + ">", "<@!" + botID + ">"} {
			if strings.HasPrefix(content, mention) {
				return strings.TrimLeftFunc(content[len(mention):], unicode.IsSpace), true
			}
		}
	}
	if prefix != "" && strings.HasPrefix(content, prefix) {
		return content[len(prefix):], true
	}
	return "", false
}

// NextArg pops the first whitespace separated token off text. rest keeps its
// original spacing apart from the separator before it.
func NextArg(text string) (arg, rest string) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	end := strings.IndexFunc(text, unicode.IsSpace)
	if end < 0 {
		return text, ""
	}
	return text[:end], strings.TrimLeftFunc(text[end:], unicode.IsSpace)
}

// ParseChannel accepts a channel mention or a bare channel ID.
func ParseChannel(arg string) (string, bool) {
	if m := channelMentionRe.FindStringSubmatch(arg); m != nil {
		return m[1], true
	}
	if snowflakeRe.MatchString(arg) {
		return arg, true
	}
	return "", false
}

// ParseMessageRef accepts a message ID, or a message link whose channel must
// match channelID.
func ParseMessageRef(arg, channelID string) (string, bool) {
	if snowflakeRe.MatchString(arg) {
		return arg, true
	}
	if m := messageLinkRe.FindStringSubmatch(arg); m != nil && m[2] == channelID {
		return m[3], true
	}
	return "", false
}
