package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// NormalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новую строку и флаг: были ли замены.
func NormalizeCRLF(content string) (string, bool) {
	if !strings.Contains(content, "\r\n") {
		return content, false
	}
	return strings.ReplaceAll(content, "\r\n", "\n"), true
}

// RemoveBOM strips a leading UTF-8 byte order mark.
func RemoveBOM(content string) (string, bool) {
	if rest, ok := strings.CutPrefix(content, "\uFEFF"); ok {
		return rest, true
	}
	return content, false
}

// NewText indexes content for line/column lookups.
func NewText(content string) (*Text, error) {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, fmt.Errorf("source too large: %w", err)
	}
	return &Text{Content: content, LineIdx: buildLineIndex(content)}, nil
}

func buildLineIndex(content string) []uint32 {
	out := make([]uint32, 0, strings.Count(content, "\n"))
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			out = append(out, uint32(i)) //nolint:gosec // length checked in NewText
		}
	}
	return out
}

// Position converts a byte offset into a line and column.
func (t *Text) Position(off uint32) LineCol {
	return toLineCol(t.LineIdx, off)
}

// Line returns line lineNum (1-based) without its newline, or "" if out of range.
func (t *Text) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	n := uint32(len(t.Content)) //nolint:gosec // length checked in NewText
	lenIdx := uint32(len(t.LineIdx)) //nolint:gosec // bounded by content length

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenIdx:
		start = t.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenIdx {
		end = t.LineIdx[lineNum-1]
	} else {
		end = n
	}
	if start > n {
		return ""
	}
	return t.Content[start:end]
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: находим число переводов строки строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var startOff uint32
	if lo > 0 {
		startOff = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo + 1), Col: off - startOff + 1} //nolint:gosec // lo <= len(lineIdx)
}
