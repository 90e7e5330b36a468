package source

import (
	"errors"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	got, changed := NormalizeCRLF("a\r\nb\rc\r\n")
	if !changed {
		t.Fatal("expected CRLF replacement to be reported")
	}
	if got != "a\nb\rc\n" {
		t.Fatalf("got %q", got)
	}
	same, changed := NormalizeCRLF("plain\n")
	if changed || same != "plain\n" {
		t.Fatalf("expected untouched input, got %q changed=%v", same, changed)
	}
}

func TestRemoveBOM(t *testing.T) {
	got, had := RemoveBOM("\uFEFFfn main() {}")
	if !had || got != "fn main() {}" {
		t.Fatalf("got %q had=%v", got, had)
	}
	if _, had := RemoveBOM("fn"); had {
		t.Fatal("unexpected BOM")
	}
}

func TestTextPosition(t *testing.T) {
	txt, err := NewText("fn a() {}\nfn b() {}\n\nfn c() {}")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{3, LineCol{Line: 1, Col: 4}},
		{9, LineCol{Line: 1, Col: 10}}, // сам '\n' принадлежит первой строке
		{10, LineCol{Line: 2, Col: 1}},
		{20, LineCol{Line: 3, Col: 1}},
		{21, LineCol{Line: 4, Col: 1}},
		{24, LineCol{Line: 4, Col: 4}},
	}
	for _, tt := range tests {
		if got := txt.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestTextLine(t *testing.T) {
	txt, err := NewText("first\nsecond\n")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	want := []string{"", "first", "second", "", ""}
	for i, w := range want {
		if got := txt.Line(uint32(i)); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
	single, _ := NewText("only")
	if got := single.Line(1); got != "only" {
		t.Errorf("Line(1) = %q", got)
	}
}

func TestSpanHelpers(t *testing.T) {
	s := Span{Start: 4, End: 9}
	if s.Len() != 5 || s.Empty() {
		t.Fatalf("unexpected Len/Empty for %v", s)
	}
	if got := s.Cover(Span{Start: 2, End: 6}); got != (Span{Start: 2, End: 9}) {
		t.Errorf("Cover = %v", got)
	}
	if got := s.Clamp(6); got != (Span{Start: 4, End: 6}) {
		t.Errorf("Clamp(6) = %v", got)
	}
	if got := s.Clamp(2); got != (Span{Start: 2, End: 2}) {
		t.Errorf("Clamp(2) = %v", got)
	}
	if got := s.String(); got != "4-9" {
		t.Errorf("String = %q", got)
	}
}

func TestParseSpan(t *testing.T) {
	cases := []struct {
		in      string
		want    Span
		wantErr bool
	}{
		{in: "3-7", want: Span{Start: 3, End: 7}},
		{in: " 5 ", want: Span{Start: 5, End: 5}},
		{in: "0-0", want: Span{}},
		{in: "7-3", wantErr: true},
		{in: "a-3", wantErr: true},
		{in: "3-", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseSpan(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrBadSpan) {
				t.Errorf("ParseSpan(%q) err = %v, want ErrBadSpan", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseSpan(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}
