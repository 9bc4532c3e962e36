package client

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// TerminalView renders frames as plain text lines and implements both View
// and Navigator for the line-oriented terminal front-end.
type TerminalView struct {
	out      io.Writer
	shortcut *color.Color
	dim      *color.Color
}

// NewTerminalView writes to out. Colors are disabled when colored is false.
func NewTerminalView(out io.Writer, colored bool) *TerminalView {
	v := &TerminalView{
		out:      out,
		shortcut: color.New(color.FgCyan, color.Bold),
		dim:      color.New(color.Faint),
	}
	if !colored {
		v.shortcut.DisableColor()
		v.dim.DisableColor()
	}

	return v
}

// Render implements View.
func (v *TerminalView) Render(f Frame) {
	if f.Empty {
		fmt.Fprintln(v.out, v.dim.Sprint("no matching subdomains"))
	}

	width := 0
	for _, r := range f.Rows {
		width = max(width, utf8.RuneCountInString(r.Name))
	}
	for _, r := range f.Rows {
		prefix := "   "
		if r.Shortcut > 0 {
			prefix = v.shortcut.Sprintf("[%d]", r.Shortcut)
		}
		fmt.Fprintf(v.out, "%s %-*s  %s\n", prefix, width, r.Name, v.dim.Sprint(r.URL))
	}

	switch {
	case f.ShowHint:
		fmt.Fprintln(v.out, v.dim.Sprint("type to search · 1-9 open · enter opens first · :k focus · :esc"))
	case f.ShowClear:
		fmt.Fprintln(v.out, v.dim.Sprintf("search %q · :clear to reset", f.Query))
	}
}

// SetLoading implements View.
func (v *TerminalView) SetLoading(visible bool) {
	if visible {
		fmt.Fprintln(v.out, v.dim.Sprint("loading subdomains..."))
	}
}

// SetQuery implements View. The terminal input line is the search field, so
// there is nothing to redraw.
func (v *TerminalView) SetQuery(string) {}

// Focus implements View.
func (v *TerminalView) Focus() {}

// Blur implements View.
func (v *TerminalView) Blur() {
	fmt.Fprintln(v.out, v.dim.Sprint("search unfocused · :k to focus"))
}

// Navigate implements Navigator by printing the chosen URL.
func (v *TerminalView) Navigate(url string) {
	fmt.Fprintln(v.out, url)
}

var (
	_ View      = (*TerminalView)(nil)
	_ Navigator = (*TerminalView)(nil)
)

// ParseLine maps one line of terminal input to an event:
//
//	(empty)   Enter
//	1-9       digit shortcut
//	:k        focus search (Cmd on Apple platforms, Ctrl elsewhere)
//	:esc      Escape
//	:clear    clear control
//	/text     search for text literally (e.g. "/1")
//	text      search for text
func ParseLine(line string, apple bool) Event {
	line = strings.TrimRight(line, "\r\n")

	switch {
	case line == "":
		return Key{Name: KeyEnter}
	case line == ":k":
		return Key{Name: KeySearch, Meta: apple, Ctrl: !apple}
	case line == ":esc":
		return Key{Name: KeyEscape}
	case line == ":clear":
		return ClearClicked{}
	case isShortcutDigit(line):
		return Key{Name: line}
	case strings.HasPrefix(line, "/"):
		return Input{Text: line[1:]}
	default:
		return Input{Text: line}
	}
}
