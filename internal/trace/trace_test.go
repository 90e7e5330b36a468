package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, in := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if l.String() != in {
			t.Errorf("round trip %q -> %q", in, l.String())
		}
	}
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("case-insensitive parse failed: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelAdmits(t *testing.T) {
	tests := []struct {
		level Level
		kind  Kind
		scope Scope
		want  bool
	}{
		{LevelOff, KindError, ScopeDriver, false},
		{LevelError, KindError, ScopeNode, true},
		{LevelError, KindPoint, ScopeDriver, false},
		{LevelPhase, KindSpanBegin, ScopePass, true},
		{LevelPhase, KindPoint, ScopeModule, false},
		{LevelDetail, KindPoint, ScopeModule, true},
		{LevelDetail, KindPoint, ScopeNode, false},
		{LevelDebug, KindPoint, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.Admits(tt.kind, tt.scope); got != tt.want {
			t.Errorf("%s.Admits(%s, %s) = %v, want %v", tt.level, tt.kind, tt.scope, got, tt.want)
		}
	}
}

func TestRingTracerWrapsAround(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "")
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("event %d: got %q, want %q", i, snap[i].Name, want)
		}
	}
	if snap[0].Seq >= snap[1].Seq || snap[1].Seq >= snap[2].Seq {
		t.Errorf("sequence numbers must increase: %d %d %d", snap[0].Seq, snap[1].Seq, snap[2].Seq)
	}
}

func TestSpanEmitsBeginAndEnd(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	s := Begin(r, ScopePass, "finish", 0).With(F("decls", "3"))
	if s.ID() == 0 {
		t.Fatal("enabled span must have an ID")
	}
	s.End("ok")

	events := r.Named("finish")
	if len(events) != 2 {
		t.Fatalf("expected begin+end, got %d", len(events))
	}
	if events[0].Kind != KindSpanBegin || events[1].Kind != KindSpanEnd {
		t.Fatalf("unexpected kinds %s %s", events[0].Kind, events[1].Kind)
	}
	if v, ok := events[1].Field("decls"); !ok || v != "3" {
		t.Fatalf("expected decls field on end event, got %q %v", v, ok)
	}
	if _, ok := events[1].Field("dur"); !ok {
		t.Fatal("expected dur field on end event")
	}
	if events[1].Detail != "ok" {
		t.Fatalf("detail = %q", events[1].Detail)
	}
}

func TestDisabledSpansAreInert(t *testing.T) {
	r := NewRingTracer(4, LevelPhase)
	s := Begin(r, ScopeNode, "decl", 0)
	if s.ID() != 0 {
		t.Fatal("filtered span must be inert")
	}
	s.With(F("k", "v")).End("")
	Begin(Nop, ScopeDriver, "cmd", 0).End("")
	Begin(nil, ScopeDriver, "cmd", 0).End("")
	if n := len(r.Snapshot()); n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 {
		t.Fatal("nil span must be safe")
	}
}

func TestStreamTracerFormats(t *testing.T) {
	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelDebug, FormatText)
	Point(st, ScopeModule, "sourcemap.source", "package::main", F("bytes", "8"))
	Error(st, ScopeModule, "sourcemap.resolve", errors.New("boom"))
	out := text.String()
	if !strings.Contains(out, "[module] • sourcemap.source (package::main) bytes=8") {
		t.Fatalf("unexpected text output %q", out)
	}
	if !strings.Contains(out, "! sourcemap.resolve (boom)") {
		t.Fatalf("missing error line in %q", out)
	}

	var nd bytes.Buffer
	js := NewStreamTracer(&nd, LevelDebug, FormatNDJSON)
	Point(js, ScopeNode, "sourcemap.decl", "", F("mangled", "P_4main_1f"))
	var decoded struct {
		Kind   string            `json:"kind"`
		Scope  string            `json:"scope"`
		Name   string            `json:"name"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(nd.Bytes()), &decoded); err != nil {
		t.Fatalf("invalid NDJSON %q: %v", nd.String(), err)
	}
	if decoded.Kind != "point" || decoded.Scope != "node" || decoded.Fields["mangled"] != "P_4main_1f" {
		t.Fatalf("unexpected event %+v", decoded)
	}
}

func TestNewAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("LevelOff must yield Nop, got %T %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelDetail, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("expected MultiTracer with ring, got %T", tr)
	}
	ring, ok := multi.Ring()
	if !ok {
		t.Fatal("expected ring target")
	}

	ctx := WithTracer(context.Background(), tr)
	Point(FromContext(ctx), ScopeModule, "hello", "")
	if len(ring.Named("hello")) != 1 || !strings.Contains(buf.String(), "hello") {
		t.Fatalf("event not fanned out: ring=%v out=%q", ring.Snapshot(), buf.String())
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer must fall back to Nop")
	}
	if FromContext(WithTracer(context.Background(), nil)) != Nop {
		t.Fatal("nil tracer must be stored as Nop")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatal("expected error")
	}
}
