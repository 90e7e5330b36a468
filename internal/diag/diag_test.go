package diag

import (
	"testing"

	"wesl/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevWarning, "a")) || !bag.Add(New(SevInfo, "b")) {
		t.Fatal("expected both diagnostics to fit")
	}
	if bag.Add(New(SevError, "c")) {
		t.Fatal("bag must respect its limit")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestBagSort(t *testing.T) {
	a := source.Root("a")
	b := source.Root("b")
	bag := NewBag(8)
	bag.Add(New(SevInfo, "late").In(b, source.Span{Start: 1, End: 2}))
	bag.Add(New(SevWarning, "warn").In(a, source.Span{Start: 4, End: 5}))
	bag.Add(New(SevError, "err").In(a, source.Span{Start: 4, End: 5}))
	bag.Add(New(SevError, "first").In(a, source.Span{Start: 0, End: 1}))
	bag.Sort()

	var got []string
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	want := []string{"first", "err", "warn", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(&BagReporter{Bag: bag})
	d := New(SevError, "boom").AtDecl("P_4main_1f").In(source.Root("main"), source.Span{Start: 3, End: 4})
	r.Report(d)
	r.Report(d)
	r.Report(d.AtDecl("P_4main_1g"))
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{"info": SevInfo, "WARN": SevWarning, "warning": SevWarning, "error": SevError, "": SevError}
	for in, want := range cases {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for fatal")
	}
}
