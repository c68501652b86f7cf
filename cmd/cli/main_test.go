package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderFromStdin(t *testing.T) {
	out, err := execute(t, `{content: "Hi", embed: {colour: "RED", description: "D"}}`, "render")
	require.NoError(t, err)

	var payload struct {
		Content string `json:"content"`
		Embeds  []struct {
			Color       int    `json:"color"`
			Description string `json:"description"`
		} `json:"embeds"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "Hi", payload.Content)
	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, 0xE74C3C, payload.Embeds[0].Color)
	assert.Equal(t, "D", payload.Embeds[0].Description)
}

func TestRenderReportsErrors(t *testing.T) {
	_, err := execute(t, `{embed: {colour: "NOPE"}}`, "render")
	assert.ErrorContains(t, err, "NOPE")

	_, err = execute(t, "   ", "render")
	assert.ErrorContains(t, err, "empty")
}

func TestColours(t *testing.T) {
	out, err := execute(t, "", "colours")
	require.NoError(t, err)
	assert.Contains(t, out, "RED")
	assert.Contains(t, out, "#e74c3c")
}

func TestCommandsReference(t *testing.T) {
	out, err := execute(t, "", "commands", "--prefix", "!")
	require.NoError(t, err)
	assert.Contains(t, out, "### 📢 Utilities")
	assert.Contains(t, out, "`!message send|new")
	assert.Contains(t, out, "`!command set|add")
	assert.Less(t, strings.Index(out, "Information"), strings.Index(out, "Settings"))
}
