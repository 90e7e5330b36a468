package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wesl/internal/diag"
	"wesl/internal/source"
	"wesl/internal/sourcemap"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностику в человекочитаемый вид:
// <display>:<line>:<col>: <SEV>: <message>
// затем строки контекста и подчёркивание ^~~~ по Span.
// Без исходника печатается только заголовок.
func Pretty(w io.Writer, d diag.Diagnostic, sm sourcemap.SourceMap, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	pal := newPalette(opts.Color)

	msg := d.Message
	if !opts.Unmangled {
		msg = Unmangle(msg, sm)
	}
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())

	loc, ok := locate(d, sm)
	if !ok {
		fmt.Fprintf(bw, "%s: %s\n", sev, msg)
		writeDeclNote(bw, d, sm, pal, opts)
		return bw.Flush()
	}

	txt, err := source.NewText(loc.text)
	if err != nil {
		return fmt.Errorf("render %s: %w", loc.name, err)
	}
	span := d.Span.Clamp(uint32(len(txt.Content))) //nolint:gosec // checked by NewText
	pos := txt.Position(span.Start)
	fmt.Fprintf(bw, "%s: %s: %s\n", pal.path.Sprintf("%s:%d:%d", loc.name, pos.Line, pos.Col), sev, msg)

	if d.HasSpan() {
		writeSnippet(bw, txt, span, pos, pal, opts.Context)
	}
	writeDeclNote(bw, d, sm, pal, opts)
	return bw.Flush()
}

// PrettyAll renders every diagnostic of bag in order.
func PrettyAll(w io.Writer, bag *diag.Bag, sm sourcemap.SourceMap, opts PrettyOpts) error {
	for _, d := range bag.Items() {
		if err := Pretty(w, d, sm, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeSnippet(w io.Writer, txt *source.Text, span source.Span, pos source.LineCol, pal palette, ctx int) {
	first := pos.Line
	if ctx > 0 {
		if uint32(ctx) >= first { //nolint:gosec // ctx > 0
			first = 1
		} else {
			first -= uint32(ctx) //nolint:gosec // ctx > 0
		}
	}
	width := len(strconv.FormatUint(uint64(pos.Line), 10))
	gutter := strings.Repeat(" ", width)

	for ln := first; ln <= pos.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), txt.Line(ln))
	}

	line := txt.Line(pos.Line)
	col := int(pos.Col - 1)
	col = min(col, len(line))
	// подчёркиваем только до конца первой строки
	end := col + int(span.Len())
	end = min(end, len(line))

	prefix := padding(line[:col])
	n := max(runewidth.StringWidth(line[col:end]), 1)
	underline := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%s |", gutter), prefix, pal.caret.Sprint(underline))
}

// padding keeps tabs and replaces every other rune with spaces of the same
// display width, so the caret lands under the span.
func padding(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func writeDeclNote(w io.Writer, d diag.Diagnostic, sm sourcemap.SourceMap, pal palette, opts PrettyOpts) {
	if !opts.ShowDecl || d.Decl == "" || sm == nil {
		return
	}
	path, decl, ok := sm.Decl(d.Decl)
	if !ok {
		return
	}
	from := path.String()
	if name, ok := sm.DisplayName(path); ok {
		from = name
	}
	fmt.Fprintf(w, "  %s in %s from %s\n", pal.note.Sprint("= note:"), decl, from)
}
