package recipes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown lays recipes out as a markdown document, one section each.
func Markdown(recipes []Recipe) string {
	if len(recipes) == 0 {
		return "_No recipes found._\n"
	}

	var b strings.Builder
	for i, r := range recipes {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", r.Name)

		var meta []string
		if r.Category != "" {
			meta = append(meta, r.Category)
		}
		if r.Area != "" {
			meta = append(meta, r.Area)
		}
		meta = append(meta, r.Tags...)
		if len(meta) > 0 {
			fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " · "))
		}

		if len(r.Ingredients) > 0 {
			b.WriteString("### Ingredients\n\n")
			for _, ing := range r.Ingredients {
				fmt.Fprintf(&b, "- %s\n", ing)
			}
			b.WriteString("\n")
		}
		if r.Instructions != "" {
			fmt.Fprintf(&b, "### Instructions\n\n%s\n", r.Instructions)
		}
	}
	return b.String()
}

// Render formats recipes for a terminal. style is a glamour standard style
// name such as "dark", "light" or "notty"; empty picks one automatically.
func Render(recipes []Recipe, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	return renderer.Render(Markdown(recipes))
}
