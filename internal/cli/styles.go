package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/frameseq/internal/tui"
)

// styler colours listing output when it goes to a terminal. Piped output
// stays plain so it can be consumed by other tools.
type styler struct {
	color bool
}

func newStyler(w io.Writer) styler {
	f, ok := w.(*os.File)
	return styler{color: ok && tui.ColorEnabled(f)}
}

func (s styler) render(style lipgloss.Style, v string) string {
	if !s.color {
		return v
	}
	return style.Render(v)
}

func (s styler) dir(v string) string     { return s.render(tui.DirectoryStyle, v) }
func (s styler) seq(v string) string     { return s.render(tui.SequenceStyle, v) }
func (s styler) missing(v string) string { return s.render(tui.MissingStyle, v) }
func (s styler) label(v string) string   { return s.render(tui.LabelStyle, v) }
