package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"botstone/internal/command"
	"botstone/internal/config"
	"botstone/internal/middleware"
	"botstone/internal/version"
	"botstone/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "Get a list of available commands" }
func (c *HelpCommand) Aliases() []string        { return []string{"commands"} }
func (c *HelpCommand) Category() string         { return "🕯️ Information" }
func (c *HelpCommand) Usage() string            { return "help [command]" }
func (c *HelpCommand) UserPermissions() []int64 { return nil }

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	if len(inv.Args) > 0 {
		return c.describe(ctx, mc, inv.Args[0])
	}

	return mc.ReplyEmbed(ctx, &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: buildHelpByCategory(mc.Registry, mc.Prefix),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Use %shelp <command> for details. Custom commands: %scommand list", mc.Prefix, mc.Prefix),
		},
	})
}

func (c *HelpCommand) describe(ctx context.Context, mc *command.MessageContext, name string) error {
	found, ok := mc.Registry.Lookup(name)
	if !ok {
		return mc.ReplyError(ctx, fmt.Sprintf("Unknown command `%s`.", name))
	}
	meta, ok := command.Meta(found)
	if !ok {
		return mc.ReplyEmbed(ctx, &discordgo.MessageEmbed{Title: found.Name(), Description: found.Description()})
	}

	embed := &discordgo.MessageEmbed{
		Title:       meta.Name(),
		Description: meta.Description(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usage", Value: fmt.Sprintf("`%s%s`", mc.Prefix, meta.Usage())},
		},
	}
	if aliases := meta.Aliases(); len(aliases) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Aliases",
			Value: "`" + strings.Join(aliases, "`, `") + "`",
		})
	}
	if perms := meta.UserPermissions(); len(perms) > 0 {
		var names []string
		for _, p := range perms {
			if n, ok := middleware.PermissionNames[p]; ok {
				names = append(names, n)
			}
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Requires",
			Value: strings.Join(names, ", "),
		})
	}
	return mc.ReplyEmbed(ctx, embed)
}

func buildHelpByCategory(reg *cmd.Registry, prefix string) string {
	categoryMap := make(map[string][]command.Command)
	for _, c := range reg.All() {
		meta, ok := command.Meta(c)
		if !ok {
			continue
		}
		categoryMap[meta.Category()] = append(categoryMap[meta.Category()], meta)
	}

	cats := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := config.CategoryWeights[cats[i]], config.CategoryWeights[cats[j]]
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})

	var sb strings.Builder
	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		for _, c := range categoryMap[cat] {
			sb.WriteString(fmt.Sprintf("`%s%s` - %s\n", prefix, c.Name(), c.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	cmd.DefaultRegistry.MustRegister(cmd.Apply(
		&HelpCommand{},
		middleware.WithCommandLogger(),
	))
}
