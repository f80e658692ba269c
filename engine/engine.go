// Package engine composes many compiled SingleExpression patterns into
// one shared search pass, the multi-pattern sibling of package pattern —
// the way the teacher engine's meta.Engine composes NFA/DFA/prefilter
// strategies behind one Regexp-like facade, except here the "strategies"
// being composed are whole compiled patterns rather than automaton
// backends for one pattern.
//
// Matching n independent expression patterns against the same input by
// calling pattern.Matches once per pattern costs O(n × |input| ×
// |pattern|) — spec.md §4.H's internal search re-scans the whole input
// from scratch for each pattern. Set instead registers every member
// pattern's required-prefix literal (literal.Extractor.RequiredPrefix)
// in one shared automaton and visits each candidate anchor position
// once, trying only the member patterns whose literal actually matched
// there — the same role Aho-Corasick plays bypassing a single regex's
// own large literal alternation in the teacher's meta.Engine, here
// applied across a whole pattern set instead of one pattern's branches.
package engine

import (
	"github.com/kazcw/comacro/ast"
	"github.com/kazcw/comacro/config"
	"github.com/kazcw/comacro/literal"
	"github.com/kazcw/comacro/match"
	"github.com/kazcw/comacro/pattern"
	"github.com/kazcw/comacro/prefilter"
	"github.com/kazcw/comacro/trace"
)

// Set is a compiled group of patterns searched together.
type Set struct {
	patterns []pattern.Pattern
	byPrefix map[string][]int
	tracked  map[int]bool
	tracker  *prefilter.Tracker
	cfg      config.Config
}

// NewSet compiles defs and registers each SingleExpression member's
// required-prefix literal (if it has one long enough to be useful) in
// one shared prefilter. StatementSequence members are compiled and
// matched too, just independently — match.ToplevelMatches already only
// visits a bounded number of candidate windows, so sharing a literal
// scan across statement-sequence patterns has no payoff (see
// SPEC_FULL.md's resolution of spec.md §9).
func NewSet(cfg config.Config, defs ...pattern.Def) *Set {
	extractor := literal.New(cfg)
	s := &Set{
		patterns: make([]pattern.Pattern, len(defs)),
		byPrefix: make(map[string][]int),
		tracked:  make(map[int]bool),
		cfg:      cfg,
	}
	var seqLits []literal.Literal
	for i, def := range defs {
		p := pattern.CompileWithConfig(def, cfg)
		s.patterns[i] = p
		if p.Kind() != pattern.SingleExpression {
			continue
		}
		if !cfg.EnablePrefilter {
			continue
		}
		lit, ok := extractor.RequiredPrefix(p.Trace())
		if !ok {
			continue
		}
		key := string(lit.Bytes)
		if _, seen := s.byPrefix[key]; !seen {
			seqLits = append(seqLits, lit)
		}
		s.byPrefix[key] = append(s.byPrefix[key], i)
		s.tracked[i] = true
	}
	if len(seqLits) > 0 {
		pf := prefilter.NewBuilder(literal.NewSeq(seqLits...)).Build()
		s.tracker = prefilter.NewTracker(pf)
	}
	return s
}

// Len reports the number of patterns in the set.
func (s *Set) Len() int { return len(s.patterns) }

// Pattern returns the i'th compiled member pattern, in the order its Def
// was passed to NewSet.
func (s *Set) Pattern(i int) pattern.Pattern { return s.patterns[i] }

// SetMatch is one match produced by Set.Matches, naming which member
// pattern (by its index into the Defs passed to NewSet) it belongs to.
type SetMatch struct {
	PatternIndex int
	pattern.Match
}

// Matches finds every match of every pattern in the set against input.
// Members without a usable required-prefix literal (including every
// StatementSequence member) are matched independently via
// pattern.Matches; members sharing the set's literal automaton are
// matched together in a single pass over input's trace bytes.
func (s *Set) Matches(input ast.StmtSeq, inputTrace trace.IndexedTrace) []SetMatch {
	var out []SetMatch
	for i, p := range s.patterns {
		if s.tracked[i] {
			continue
		}
		for _, m := range pattern.Matches(p, input, inputTrace) {
			out = append(out, SetMatch{PatternIndex: i, Match: m})
		}
	}
	if s.tracker == nil {
		return out
	}

	buf := inputTrace.Trace().Bytes()
	hitsByPattern := make(map[int][]match.InternalMatch)
	pos := 0
	for pos <= len(buf) {
		hit := s.tracker.Find(buf, pos)
		if hit < 0 {
			if !s.tracker.IsActive() {
				// The shared literal was retired: anchors from pos-2 on
				// are scanned for every tracked pattern individually.
				for idx := range s.tracked {
					for _, m := range match.InternalMatches(s.patterns[idx].Trace(), inputTrace.Trace()) {
						if m.Start >= pos-2 {
							hitsByPattern[idx] = append(hitsByPattern[idx], m)
						}
					}
				}
			}
			break
		}
		anchor := hit - 2
		if anchor >= 0 && buf[anchor] == trace.Meta && buf[anchor+1] == trace.Open {
			confirmed := false
			for prefixBytes, idxs := range s.byPrefix {
				n := len(prefixBytes)
				if hit+n > len(buf) || string(buf[hit:hit+n]) != prefixBytes {
					continue
				}
				for _, idx := range idxs {
					ok, consumed := match.IsMatch(s.patterns[idx].Trace().Bytes(), buf[anchor:])
					if !ok {
						continue
					}
					confirmed = true
					end := anchor + consumed
					hitsByPattern[idx] = append(hitsByPattern[idx], match.InternalMatch{
						Start:       anchor,
						End:         end,
						Synthesized: match.Synthesize(buf, anchor, end),
					})
				}
			}
			if confirmed {
				s.tracker.ConfirmMatch()
			}
		}
		pos = hit + 1
	}
	for idx, hits := range hitsByPattern {
		for _, m := range pattern.BindExprHits(s.patterns[idx], input, hits) {
			out = append(out, SetMatch{PatternIndex: idx, Match: m})
		}
	}
	return out
}
