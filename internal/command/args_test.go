package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"prefix", ".ping", "ping", true},
		{"mention", "<@42> ping", "ping", true},
		{"nick mention", "<@!42>   message send", "message send", true},
		{"other mention", "<@43> ping", "", false},
		{"no prefix", "ping", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StripPrefix(tt.content, ".", "42")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextArgKeepsRestVerbatim(t *testing.T) {
	arg, rest := NextArg("  send <#1>  {embed: {\n  description: \"a  b\"\n}}")
	assert.Equal(t, "send", arg)
	assert.Equal(t, "<#1>  {embed: {\n  description: \"a  b\"\n}}", rest)

	arg, rest = NextArg(rest)
	assert.Equal(t, "<#1>", arg)
	assert.Equal(t, "{embed: {\n  description: \"a  b\"\n}}", rest)

	arg, rest = NextArg("last")
	assert.Equal(t, "last", arg)
	assert.Empty(t, rest)

	arg, rest = NextArg("   ")
	assert.Empty(t, arg)
	assert.Empty(t, rest)
}

func TestParseChannel(t *testing.T) {
	id, ok := ParseChannel("<#123456789012345678>")
	assert.True(t, ok)
	assert.Equal(t, "123456789012345678", id)

	id, ok = ParseChannel("123456789012345678")
	assert.True(t, ok)
	assert.Equal(t, "123456789012345678", id)

	for _, bad := range []string{"#general", "<@123456789012345678>", "<#abc>", "12"} {
		_, ok := ParseChannel(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseMessageRef(t *testing.T) {
	const channel = "222222222222222222"

	id, ok := ParseMessageRef("333333333333333333", channel)
	assert.True(t, ok)
	assert.Equal(t, "333333333333333333", id)

	id, ok = ParseMessageRef("https://discord.com/channels/111111111111111111/222222222222222222/333333333333333333", channel)
	assert.True(t, ok)
	assert.Equal(t, "333333333333333333", id)

	_, ok = ParseMessageRef("https://discord.com/channels/111111111111111111/999999999999999999/333333333333333333", channel)
	assert.False(t, ok, "link to another channel")

	_, ok = ParseMessageRef("12345678", channel)
	assert.False(t, ok)
}
