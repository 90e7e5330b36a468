package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int  // сколько строк до строки с ошибкой показывать
	ShowDecl  bool // печатать "= note: in <decl> from <module>"
	Unmangled bool // сообщение уже без mangled имён, Unmangle не вызывать
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	Max              int  // обрезка вывода, не Bag
}
