// Package prefilter provides fast candidate filtering ahead of the
// structural trace walk (match.IsMatch), using literal byte runs
// extracted from a compiled pattern.
//
// A prefilter scans an input's trace bytes for a literal that must be
// present at any real match, and returns candidate byte offsets for the
// structural walk to confirm. This never replaces the walk — spec.md's
// pattern language has no feature (no anchors, no alternation) that
// would let a literal hit stand in for a confirmed structural match —
// but it lets match.InternalMatchesFiltered and engine.Set skip
// positions a literal scan has already ruled out.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/kazcw/comacro/literal"
)

// Prefilter quickly finds candidate positions in a trace buffer before
// the structural walk runs.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 if none exists. A candidate is never a guaranteed match —
	// match.IsMatch must still confirm it.
	Find(haystack []byte, start int) int

	// HeapBytes reports the prefilter's heap memory footprint, for
	// profiling and memory budgeting.
	HeapBytes() int
}

// Builder constructs the most effective prefilter for a set of literal
// runs extracted from compiled patterns (this module's callers pass
// literal.Extractor.RequiredPrefix results).
type Builder struct {
	literals *literal.Seq
}

// NewBuilder creates a Builder over literals extracted from a pattern's
// trace.
func NewBuilder(literals *literal.Seq) *Builder {
	return &Builder{literals: literals}
}

// Build returns the best prefilter for b's literals, or nil if none of
// them are worth prefiltering on.
//
// Selection mirrors the teacher engine's literal-count-driven strategy
// selection, simplified to this domain's two cases: a single byte or
// substring literal uses a direct stdlib search (there is no SIMD
// backend in this module — see DESIGN.md); more than one literal run
// uses an Aho-Corasick automaton, since unlike the regex domain there
// is no alternation to make a small multi-literal case (Teddy's niche)
// common here.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.literals)
}

func selectPrefilter(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}
	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newBytePrefilter(lit.Bytes[0])
		}
		return newSubstringPrefilter(lit.Bytes)
	}
	pf, err := newAhoCorasickPrefilter(seq)
	if err != nil {
		// Falling back to the longest single literal still narrows the
		// search; it just misses candidates the other literals would
		// have caught.
		longest := seq.Get(0)
		for i := 1; i < seq.Len(); i++ {
			if len(seq.Get(i).Bytes) > len(longest.Bytes) {
				longest = seq.Get(i)
			}
		}
		return newSubstringPrefilter(longest.Bytes)
	}
	return pf
}

// bytePrefilter searches for a single literal byte via bytes.IndexByte.
type bytePrefilter struct {
	needle byte
}

func newBytePrefilter(needle byte) Prefilter {
	return &bytePrefilter{needle: needle}
}

func (p *bytePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *bytePrefilter) HeapBytes() int { return 0 }

// substringPrefilter searches for a single literal byte run via
// bytes.Index.
type substringPrefilter struct {
	needle []byte
}

func newSubstringPrefilter(needle []byte) Prefilter {
	cp := make([]byte, len(needle))
	copy(cp, needle)
	return &substringPrefilter{needle: cp}
}

func (p *substringPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *substringPrefilter) HeapBytes() int { return len(p.needle) }

// ahoCorasickPrefilter searches for any of several literal byte runs at
// once using a compiled Aho-Corasick automaton.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

func newAhoCorasickPrefilter(seq *literal.Seq) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{auto: auto}, nil
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) HeapBytes() int { return 0 }
