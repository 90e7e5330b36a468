package diagfmt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"wesl/internal/sourcemap"
)

// Unmangle replaces every identifier token of msg that the source map knows
// as a mangled name with the original declaration name. Other text is kept
// byte for byte.
func Unmangle(msg string, sm sourcemap.SourceMap) string {
	if sm == nil || msg == "" {
		return msg
	}
	var sb strings.Builder
	last := 0 // msg[:last] уже в sb
	i := 0
	for i < len(msg) {
		r, size := utf8.DecodeRuneInString(msg[i:])
		if !isIdentContinue(r) {
			i += size
			continue
		}
		j := i + size
		for j < len(msg) {
			r2, s2 := utf8.DecodeRuneInString(msg[j:])
			if !isIdentContinue(r2) {
				break
			}
			j += s2
		}
		// 3f_1 это литерал, а не идентификатор
		if !isIdentStart(r) {
			i = j
			continue
		}
		if _, decl, ok := sm.Decl(msg[i:j]); ok {
			if last == 0 {
				sb.Grow(len(msg))
			}
			sb.WriteString(msg[last:i])
			sb.WriteString(decl)
			last = j
		}
		i = j
	}
	if last == 0 {
		return msg
	}
	sb.WriteString(msg[last:])
	return sb.String()
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
