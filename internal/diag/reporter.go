package diag

import "wesl/internal/source"

// Reporter: минимальный контракт получения диагностик.
// Реализации: BagReporter (кладёт в Bag), DedupReporter (фильтр повторов).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter appends every diagnostic to Bag.
type BagReporter struct {
	Bag *Bag
}

func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

type dedupKey struct {
	sev    Severity
	decl   string
	module source.ModulePath
	start  uint32
	end    uint32
	msg    string
}

// DedupReporter wraps another Reporter and suppresses diagnostics with the
// same severity, location and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	key := dedupKey{
		sev:   d.Severity,
		decl:  d.Decl,
		start: d.Span.Start,
		end:   d.Span.End,
		msg:   d.Message,
	}
	if d.Module != nil {
		key.module = *d.Module
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
