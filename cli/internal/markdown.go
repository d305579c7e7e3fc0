package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// glamourTheme can be overridden with GLAMOUR_STYLE, as glamour itself does
func glamourTheme() string {
	if theme := os.Getenv("GLAMOUR_STYLE"); theme != "" {
		return theme
	}
	return "auto"
}

// renderMarkdown renders markdown content, using glamour for terminal output or plain text otherwise
func renderMarkdown(markdown string, theme string) (string, error) {
	// If stdout is a terminal, render styled markdown using glamour
	if term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, err := glamour.Render(markdown, theme)
		if err != nil {
			// Fall back to plain markdown if rendering fails
			return markdown, nil
		}
		return rendered, nil
	}

	// For non-terminal output (pipes, redirects), return plain markdown
	return markdown, nil
}

// printMarkdown renders and prints markdown
func printMarkdown(w io.Writer, markdown string) error {
	rendered, err := renderMarkdown(markdown, glamourTheme())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}

// printResult writes v as indented JSON or as the markdown produced by table
func printResult(w io.Writer, output string, v any, table func() string) error {
	if output == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return printMarkdown(w, table())
}

// markdownTable formats rows as a GitHub-flavoured markdown table
func markdownTable(title string, headers []string, rows [][]string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "## %s\n\n", title)
	}
	if len(rows) == 0 {
		b.WriteString("_No results._\n")
		return b.String()
	}

	b.WriteString("| " + strings.Join(escapeCells(headers), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	return b.String()
}

// markdownFields formats label/value pairs as a two column table
func markdownFields(title string, fields [][2]string) string {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f[0], f[1]})
	}
	return markdownTable(title, []string{"Field", "Value"}, rows)
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", `\|`)
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}
