// Package docs renders the command reference from a command registry.
package docs

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"botstone/internal/command"
	"botstone/pkg/cmd"
)

var referenceTmpl = template.Must(template.New("reference").Parse(`# {{.Title}} commands
{{range .Sections}}
### {{.Category}}
{{range .Entries}}
- **{{.Usage}}** {{.Description}}{{if .Aliases}} (aliases: {{.Aliases}}){{end}}
{{- end}}
{{end}}`))

type entry struct {
	Usage       string
	Description string
	Aliases     string
}

type section struct {
	Category string
	Entries  []entry
}

// WriteReference writes a Markdown list of the registry's commands grouped by
// category. categoryWeights orders the sections (lower first). Usage lines
// are shown with prefix.
func WriteReference(w io.Writer, title, prefix string, registry *cmd.Registry, categoryWeights map[string]int) error {
	byCategory := make(map[string][]entry)
	for _, c := range registry.All() {
		e := entry{Usage: "`" + prefix + c.Name() + "`", Description: c.Description()}
		category := ""
		if meta, ok := command.Meta(c); ok {
			category = meta.Category()
			if usage := meta.Usage(); usage != "" {
				e.Usage = "`" + prefix + usage + "`"
			}
			if aliases := meta.Aliases(); len(aliases) > 0 {
				e.Aliases = strings.Join(aliases, ", ")
			}
		}
		byCategory[category] = append(byCategory[category], e)
	}

	sections := make([]section, 0, len(byCategory))
	for category, entries := range byCategory {
		if category == "" {
			category = "Other"
		}
		sections = append(sections, section{Category: category, Entries: entries})
	}
	slices.SortFunc(sections, func(a, b section) int {
		if wa, wb := weight(categoryWeights, a.Category), weight(categoryWeights, b.Category); wa != wb {
			return wa - wb
		}
		return strings.Compare(a.Category, b.Category)
	})

	if err := referenceTmpl.Execute(w, struct {
		Title    string
		Sections []section
	}{title, sections}); err != nil {
		return fmt.Errorf("failed to render command reference: %w", err)
	}
	return nil
}

func weight(weights map[string]int, category string) int {
	if w, ok := weights[category]; ok {
		return w
	}
	return 1 << 20
}
