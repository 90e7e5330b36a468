package diag

import "wesl/internal/source"

// Diagnostic is a message about linked output, optionally pointing back into
// one of the original modules.
type Diagnostic struct {
	Severity Severity
	Message  string
	Decl     string             // mangled name, "" when unknown
	Module   *source.ModulePath // nil: take the module of Decl, then the default source
	Span     source.Span        // пустой Span: только заголовок без строки кода
}

// New creates a diagnostic without location.
func New(sev Severity, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Message: msg}
}

// AtDecl returns a copy of d attached to a mangled declaration.
func (d Diagnostic) AtDecl(mangled string) Diagnostic {
	d.Decl = mangled
	return d
}

// In returns a copy of d pointing at span inside module.
func (d Diagnostic) In(module source.ModulePath, span source.Span) Diagnostic {
	d.Module = &module
	d.Span = span
	return d
}

// HasSpan reports whether the diagnostic carries a non-empty byte range.
func (d Diagnostic) HasSpan() bool {
	return !d.Span.Empty()
}
