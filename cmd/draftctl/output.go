package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"festdraft/internal/client/config"
	"festdraft/pkg/listquery"
)

func (a *app) jsonOutput() bool {
	return a.cfg != nil && a.cfg.Output == config.OutputJSON
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// table renders rows under headers. Styling is dropped automatically when
// the output is not a terminal.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	mutedStyle := r.NewStyle().Faint(true)

	if t.title != "" {
		fmt.Fprintln(w, titleStyle.Render(t.title))
	}
	if len(t.rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("(none)"))
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// padding counts toward the rendered width
	for i := range widths {
		widths[i] += 2
	}

	line := func(style lipgloss.Style, cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(widths[i]).Render(cell)
		}
		return strings.TrimRight(strings.Join(parts, mutedStyle.Render("│")), " ")
	}

	fmt.Fprintln(w, line(headStyle, t.headers))
	rule := make([]string, len(widths))
	for i, wd := range widths {
		rule[i] = strings.Repeat("─", wd)
	}
	fmt.Fprintln(w, mutedStyle.Render(strings.Join(rule, "┼")))
	for _, row := range t.rows {
		fmt.Fprintln(w, line(cellStyle, row))
	}
}

// footer prints the "Showing X of Y" line under a list.
func footer[T any](w io.Writer, page listquery.Page[T]) {
	if page.Total == page.Of {
		fmt.Fprintf(w, "Showing %d of %d", len(page.Items), page.Total)
	} else {
		fmt.Fprintf(w, "Showing %d of %d (filtered from %d)", len(page.Items), page.Total, page.Of)
	}
	if page.TotalPages > 1 {
		fmt.Fprintf(w, ", page %d/%d", page.Page, page.TotalPages)
	}
	fmt.Fprintln(w)
}

func readTerminalPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("no terminal to prompt for a password; use --password-stdin")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return pw, err
}

// readLine reads one line of standard input. The reader is shared so
// consecutive prompts do not lose buffered input.
func (a *app) readLine() (string, error) {
	if a.lines == nil {
		a.lines = bufio.NewReader(a.in)
	}
	line, err := a.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
