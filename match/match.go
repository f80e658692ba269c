// Package match implements anchored structural comparison of two trace
// buffers and the two search strategies built on top of it (spec.md
// §4.H): a top-level window search over an IndexedTrace's recorded
// statement offsets, and a symbol-by-symbol internal search for an
// expression pattern anywhere inside an input trace.
//
// Unlike reconcile and bind, match never touches a host AST: it works
// entirely on the flat byte encoding, which is the whole point of the
// trace format (spec.md §4.A's rationale — structural comparison
// degrades to a memcmp-like loop and subtree skipping to a bracket
// counter). The wildcard bindings tracked during a match are transient,
// used only to enforce "repeated metavariable occurrences must bind
// equal subtrees" (spec.md invariant 3) — the durable bindings a caller
// actually wants come from a second pass with bind.Binder once a match
// is known to exist.
package match

import (
	"bytes"

	"github.com/kazcw/comacro/internal/sparse"
	"github.com/kazcw/comacro/prefilter"
	"github.com/kazcw/comacro/trace"
)

// IsMatch attempts an anchored match of pattern against input, both raw
// trace byte buffers. It returns whether the pattern's symbols were all
// consumed and, if so, how many bytes of input were consumed doing it —
// the input may extend past the pattern (spec.md §4.H: "the input may
// extend past the pattern if called from a sub-search").
//
// A wildcard's first occurrence binds to whatever subtree occupies its
// position; every later occurrence of the same index must be byte-equal
// to that subtree's content, or the match fails (spec.md invariant 3).
func IsMatch(pattern, input []byte) (ok bool, consumed int) {
	var bindings [][]byte
	pi, ii := 0, 0
	for pi < len(pattern) {
		if ii >= len(input) {
			return false, 0
		}
		pb := pattern[pi]
		if pb != trace.Meta {
			if input[ii] != pb {
				return false, 0
			}
			pi++
			ii++
			continue
		}
		if pi+1 >= len(pattern) {
			return false, 0
		}
		switch pattern[pi+1] {
		case trace.Meta:
			if ii+1 >= len(input) || input[ii] != trace.Meta || input[ii+1] != trace.Meta {
				return false, 0
			}
			pi += 2
			ii += 2
		case trace.Open:
			if ii+1 >= len(input) || input[ii] != trace.Meta || input[ii+1] != trace.Open {
				return false, 0
			}
			pi += 2
			ii += 2
		case trace.Close:
			if ii+1 >= len(input) || input[ii] != trace.Meta || input[ii+1] != trace.Close {
				return false, 0
			}
			pi += 2
			ii += 2
		default:
			k := int(pattern[pi+1])
			pi += 2
			if ii+1 >= len(input) || input[ii] != trace.Meta || input[ii+1] != trace.Open {
				return false, 0
			}
			contentEnd, after, ok := subtreeBounds(input, ii)
			if !ok {
				return false, 0
			}
			content := input[ii+2 : contentEnd]
			if k > len(bindings) {
				grown := make([][]byte, k)
				copy(grown, bindings)
				bindings = grown
			}
			if bindings[k-1] == nil {
				bindings[k-1] = content
			} else if !bytes.Equal(bindings[k-1], content) {
				return false, 0
			}
			ii = after
		}
	}
	return true, ii
}

// subtreeBounds scans the subtree opened by the META OPEN pair at
// buf[openPos:openPos+2], returning the offset where its content ends
// (the position of the META that begins the balancing CLOSE) and the
// offset one past that CLOSE. ok is false if the buffer ends before the
// subtree balances, which only happens against a malformed trace.
func subtreeBounds(buf []byte, openPos int) (contentEnd, after int, ok bool) {
	i := openPos + 2
	depth := 1
	for depth > 0 {
		if i+1 >= len(buf) {
			return 0, 0, false
		}
		if buf[i] == trace.Meta {
			switch buf[i+1] {
			case trace.Open:
				depth++
			case trace.Close:
				depth--
				if depth == 0 {
					contentEnd = i
				}
			}
			i += 2
		} else {
			i++
		}
	}
	return contentEnd, i, true
}

// nextSymbol advances past the single symbol starting at pos: a
// META-prefixed pair (escaped literal, subtree open/close, or wildcard)
// is two bytes, anything else is a plain literal byte.
func nextSymbol(buf []byte, pos int) int {
	if buf[pos] == trace.Meta {
		return pos + 2
	}
	return pos + 1
}

// ToplevelMatches anchors the pattern at every width-toplevelLen window
// of top-level statements recorded in input, in order, and returns the
// start index of each window the pattern matches in full (spec.md §4.H,
// with the windowing behavior SPEC_FULL.md resolves for multi-statement
// patterns). toplevelLen is the number of top-level sibling subtrees the
// compiled pattern itself spans.
func ToplevelMatches(pattern trace.Trace, input trace.IndexedTrace, toplevelLen int) []int {
	n := input.NumStatements()
	if toplevelLen < 1 || toplevelLen > n {
		return nil
	}
	buf := input.Trace().Bytes()
	pat := pattern.Bytes()
	var out []int
	for i := 0; i+toplevelLen <= n; i++ {
		start := input.Offset(i)
		end := input.End(i + toplevelLen - 1)
		ok, consumed := IsMatch(pat, buf[start:end])
		if ok && start+consumed == end {
			out = append(out, i)
		}
	}
	return out
}

// InternalMatch is one position where an expression pattern matched
// anchored inside an input trace. Synthesized is the input trace with
// the matched subtree replaced by wildcard 1 (spec.md §4.H) — bind.Binder
// re-walks the original AST against Synthesized to recover the matched
// subtree itself, then against the original pattern to recover that
// subtree's own wildcard bindings (spec.md §4.I's two-pass extraction).
type InternalMatch struct {
	Start, End  int
	Synthesized trace.Trace
}

// InternalMatches scans every symbol position of input's trace and
// attempts an anchored match there, returning every position that
// succeeds in traversal order (spec.md §4.H). It does not prune matches
// nested inside an already-accepted one — spec.md §9 leaves that to the
// caller; NonOverlapping provides it.
func InternalMatches(pattern trace.Trace, input trace.Trace) []InternalMatch {
	buf := input.Bytes()
	pat := pattern.Bytes()
	var out []InternalMatch
	for pos := 0; pos < len(buf); pos = nextSymbol(buf, pos) {
		ok, consumed := IsMatch(pat, buf[pos:])
		if !ok {
			continue
		}
		end := pos + consumed
		out = append(out, InternalMatch{
			Start:       pos,
			End:         end,
			Synthesized: Synthesize(buf, pos, end),
		})
	}
	return out
}

// InternalMatchesFiltered behaves like InternalMatches, but visits only
// the anchor positions tracker's literal can rule in instead of every
// symbol position in input — tracker must be built from
// literal.Extractor.RequiredPrefix(pattern), whose contract guarantees a
// hit read back two bytes is itself a candidate anchor (the pattern's
// own leading subtree-open). Positions tracker finds are still only
// candidates: the anchored IsMatch walk always confirms them, exactly as
// package prefilter's doc comment describes, and each confirmed match is
// reported back to tracker via ConfirmMatch so a literal that turns out
// to be a poor discriminant for this input gets retired automatically
// (prefilter.Tracker's own documented usage pattern). Once tracker is
// retired, the positions it has not reached are scanned the way
// InternalMatches scans them.
//
// If tracker is nil, this falls back to InternalMatches.
func InternalMatchesFiltered(pattern trace.Trace, input trace.Trace, tracker *prefilter.Tracker) []InternalMatch {
	if tracker == nil {
		return InternalMatches(pattern, input)
	}
	buf := input.Bytes()
	pat := pattern.Bytes()
	var out []InternalMatch
	pos := 0
	for pos <= len(buf) {
		hit := tracker.Find(buf, pos)
		if hit < 0 {
			if !tracker.IsActive() {
				// Anchors below pos-2 were already ruled in or out.
				for _, m := range InternalMatches(pattern, input) {
					if m.Start >= pos-2 {
						out = append(out, m)
					}
				}
			}
			break
		}
		anchor := hit - 2
		if anchor >= 0 && buf[anchor] == trace.Meta && buf[anchor+1] == trace.Open {
			if ok, consumed := IsMatch(pat, buf[anchor:]); ok {
				tracker.ConfirmMatch()
				end := anchor + consumed
				out = append(out, InternalMatch{
					Start:       anchor,
					End:         end,
					Synthesized: Synthesize(buf, anchor, end),
				})
			}
		}
		pos = hit + 1
	}
	return out
}

// Synthesize builds a copy of buf with the byte range [start,end)
// replaced by a single wildcard 1 symbol — the "synthesized trace" spec.md
// §4.H describes InternalMatches producing for a later bind.Binder pass.
func Synthesize(buf []byte, start, end int) trace.Trace {
	out := make([]byte, 0, start+2+(len(buf)-end))
	out = append(out, buf[:start]...)
	out = append(out, trace.Meta, 1)
	out = append(out, buf[end:]...)
	return trace.FromBytes(out)
}

// NonOverlapping filters matches (assumed already in traversal order, as
// InternalMatches returns them) to the subsequence whose byte ranges are
// pairwise disjoint, keeping the earliest-starting match of any
// overlapping group — "the outer-most match wins when matches nest"
// (spec.md §4.H). It uses a sparse.SparseSet over byte offsets so
// checking a candidate against everything claimed so far costs time
// proportional to the candidate's own byte span instead of an O(n) scan
// of previously accepted matches.
func NonOverlapping(matches []InternalMatch) []InternalMatch {
	if len(matches) == 0 {
		return nil
	}
	maxEnd := 0
	for _, m := range matches {
		if m.End > maxEnd {
			maxEnd = m.End
		}
	}
	claimed := sparse.NewSparseSet(uint32(maxEnd))
	out := make([]InternalMatch, 0, len(matches))
	for _, m := range matches {
		if claimed.ContainsRange(uint32(m.Start), uint32(m.End)) {
			continue
		}
		claimed.InsertRange(uint32(m.Start), uint32(m.End))
		out = append(out, m)
	}
	return out
}
