package diagfmt

import (
	"encoding/json"
	"io"

	"wesl/internal/diag"
	"wesl/internal/source"
	"wesl/internal/sourcemap"
)

// LocationJSON представляет местоположение в модуле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	Module    string `json:"module,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DeclJSON описывает исходное объявление mangled имени
type DeclJSON struct {
	Mangled string `json:"mangled"`
	Name    string `json:"name,omitempty"`
	Module  string `json:"module,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Message  string        `json:"message"`
	Decl     *DeclJSON     `json:"decl,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(d diag.Diagnostic, sm sourcemap.SourceMap, includePositions bool) *LocationJSON {
	loc, ok := locate(d, sm)
	if !ok {
		return nil
	}
	out := &LocationJSON{File: loc.name}
	if loc.hasMod {
		out.Module = loc.module.String()
	}

	txt, err := source.NewText(loc.text)
	if err != nil {
		return out
	}
	span := d.Span.Clamp(uint32(len(txt.Content))) //nolint:gosec // checked by NewText
	out.StartByte, out.EndByte = span.Start, span.End

	// Добавляем позиции строк/колонок если требуется
	if includePositions {
		start, end := txt.Position(span.Start), txt.Position(span.End)
		out.StartLine, out.StartCol = start.Line, start.Col
		out.EndLine, out.EndCol = end.Line, end.Col
	}
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, sm sourcemap.SourceMap, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Message:  Unmangle(d.Message, sm),
			Location: makeLocation(d, sm, opts.IncludePositions),
		}
		if d.Decl != "" {
			dj.Decl = &DeclJSON{Mangled: d.Decl}
			if sm != nil {
				if path, name, ok := sm.Decl(d.Decl); ok {
					dj.Decl.Name = name
					dj.Decl.Module = path.String()
				}
			}
		}
		diagnostics = append(diagnostics, dj)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, sm sourcemap.SourceMap, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, sm, opts))
}
