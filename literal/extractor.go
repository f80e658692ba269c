// Package literal extracts literal byte runs from a compiled pattern
// trace for use as prefilter candidates ahead of the structural walk
// (trace.Trace never contains alternation — spec.md's pattern language
// has no regex-style branching — so extraction here is a single linear
// scan rather than the regex extractor's alternation/char-class
// cross-product expansion).
package literal

import (
	"sort"

	"github.com/kazcw/comacro/config"
	"github.com/kazcw/comacro/trace"
)

// Extractor extracts literal byte runs from a pattern's compiled trace.
//
// A run is any maximal span of the trace's bytes that contains no
// structural META marker (an OPEN, CLOSE, or wildcard byte) — an escaped
// literal 0xFF (encoded as the two-byte META,META sequence, see
// trace.Generator) counts as part of a run, since it is itself literal
// content rather than a boundary. Extracted runs are taken verbatim from
// the trace's own encoding, so they can be searched for directly in an
// input's trace bytes without re-encoding.
type Extractor struct {
	cfg config.Config
}

// New creates an Extractor governed by cfg's MinLiteralLen and
// MaxLiterals.
func New(cfg config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract returns t's literal runs of at least e.cfg.MinLiteralLen
// bytes, longest first, capped at e.cfg.MaxLiterals entries. Every
// returned Literal is marked Complete: true, meaning it was extracted
// from a region of the pattern with no wildcard in it — not, as in the
// regex extractor this is adapted from, that a literal hit alone proves
// a match. A literal hit is always just a prefilter candidate here; the
// structural walk (match.IsMatch) still runs on every hit to confirm it
// (spec.md §4.H never treats a prefilter as authoritative).
func (e *Extractor) Extract(t trace.Trace) *Seq {
	buf := t.Bytes()
	var runs []Literal
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= e.cfg.MinLiteralLen {
			b := make([]byte, end-start)
			copy(b, buf[start:end])
			runs = append(runs, NewLiteral(b, true))
		}
		start = -1
	}

	i := 0
	for i < len(buf) {
		if buf[i] != trace.Meta {
			if start < 0 {
				start = i
			}
			i++
			continue
		}
		if i+1 < len(buf) && buf[i+1] == trace.Meta {
			// Escaped literal 0xFF byte: part of the run, not a boundary.
			if start < 0 {
				start = i
			}
			i += 2
			continue
		}
		// OPEN, CLOSE, or a wildcard: ends any run in progress.
		flush(i)
		i += 2
	}
	flush(len(buf))

	sort.SliceStable(runs, func(a, b int) bool {
		return len(runs[a].Bytes) > len(runs[b].Bytes)
	})
	if len(runs) > e.cfg.MaxLiterals {
		runs = runs[:e.cfg.MaxLiterals]
	}
	return NewSeq(runs...)
}

// LongestLiteral returns the single longest literal run extracted from
// t, or a zero Literal with ok false if t has none meeting
// e.cfg.MinLiteralLen. This is the common case: most compiled patterns
// have exactly one discriminating literal run worth prefiltering on (a
// discriminant byte plus any surrounding fixed structure), and
// prefilter.Builder uses a single byte or substring search instead of
// Aho-Corasick when it is given exactly one literal.
func (e *Extractor) LongestLiteral(t trace.Trace) (lit Literal, ok bool) {
	seq := e.Extract(t)
	if seq.IsEmpty() {
		return Literal{}, false
	}
	return seq.Get(0), true
}

// RequiredPrefix returns the literal run immediately following t's own
// leading subtree-open, or ok=false if t doesn't start with META OPEN or
// the run is shorter than e.cfg.MinLiteralLen.
//
// This is the one literal Extract finds whose position is load-bearing:
// a run returned by Extract/LongestLiteral can sit anywhere inside the
// pattern, so knowing only its bytes (not its offset) is enough to rule
// out an input that lacks them, but not enough to say *where* in the
// input a match could start. A run starting right after t's own opening
// bytes is different — every anchored match of t must begin with
// exactly those bytes at exactly that offset from the candidate anchor
// (match.IsMatch always consumes a pattern's own leading subtree-open
// literally), so a hit for this literal in an input trace, read back two
// bytes, is itself the candidate anchor. match.InternalMatchesFiltered
// relies on this.
func (e *Extractor) RequiredPrefix(t trace.Trace) (lit Literal, ok bool) {
	buf := t.Bytes()
	if len(buf) < 2 || buf[0] != trace.Meta || buf[1] != trace.Open {
		return Literal{}, false
	}
	i := 2
	for i < len(buf) {
		if buf[i] != trace.Meta {
			i++
			continue
		}
		if i+1 < len(buf) && buf[i+1] == trace.Meta {
			i += 2
			continue
		}
		break
	}
	if i-2 < e.cfg.MinLiteralLen {
		return Literal{}, false
	}
	b := make([]byte, i-2)
	copy(b, buf[2:i])
	return NewLiteral(b, true), true
}
