package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadSpan is returned by ParseSpan for malformed input.
var ErrBadSpan = errors.New("bad span")

// Span is a half-open byte range inside one module's source text.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Clamp trims the span to a text of length n.
func (s Span) Clamp(n uint32) Span {
	if s.Start > n {
		s.Start = n
	}
	if s.End > n {
		s.End = n
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}

// ParseSpan parses "start-end" or a single offset "start" (an empty span).
func ParseSpan(s string) (Span, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		hi = lo
	}
	start, err := strconv.ParseUint(lo, 10, 32)
	if err != nil {
		return Span{}, fmt.Errorf("%w %q: %w", ErrBadSpan, s, err)
	}
	end, err := strconv.ParseUint(hi, 10, 32)
	if err != nil {
		return Span{}, fmt.Errorf("%w %q: %w", ErrBadSpan, s, err)
	}
	if end < start {
		return Span{}, fmt.Errorf("%w %q: end before start", ErrBadSpan, s)
	}
	return Span{Start: uint32(start), End: uint32(end)}, nil
}
