package source

// LineCol represents a human-readable position in a source text.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Text is a module's source with its newline index, built on demand by
// consumers that need positions.
type Text struct {
	Content string
	LineIdx []uint32
}
