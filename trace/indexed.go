package trace

import "github.com/kazcw/comacro/internal/conv"

// IndexedTrace is a Trace plus a monotonic list of byte offsets, one per
// top-level statement, each pointing at the first byte of that
// statement's subtree — i.e. the META OPEN byte (spec.md §3).
type IndexedTrace struct {
	trace   Trace
	offsets []uint32
}

// Trace returns the underlying trace.
func (it IndexedTrace) Trace() Trace { return it.trace }

// NumStatements returns the number of top-level statements recorded.
func (it IndexedTrace) NumStatements() int { return len(it.offsets) }

// Offset returns the byte offset of the i'th top-level statement's
// opening META OPEN symbol.
func (it IndexedTrace) Offset(i int) int { return int(it.offsets[i]) }

// End returns the byte offset one past the end of the i'th top-level
// statement — the start of statement i+1, or the end of the trace if i
// is the last statement.
func (it IndexedTrace) End(i int) int {
	if i+1 < len(it.offsets) {
		return int(it.offsets[i+1])
	}
	return it.trace.Len()
}

// IndexedGenerator extends Generator with a parallel list of top-level
// statement offsets (spec.md §4.C). Call Mark immediately before
// visiting each top-level statement of the input.
type IndexedGenerator struct {
	Generator
	offsets []uint32
}

// NewIndexedGenerator creates an empty IndexedGenerator. expectMarks is
// an optional capacity hint for the number of top-level statements.
func NewIndexedGenerator(expectMarks int) *IndexedGenerator {
	g := &IndexedGenerator{Generator: Generator{datum: -1}}
	if expectMarks > 0 {
		g.offsets = make([]uint32, 0, expectMarks)
	}
	return g
}

// Mark records the current buffer length as the offset of the next
// top-level statement. Call once per top-level statement, immediately
// before visiting it.
func (g *IndexedGenerator) Mark() {
	g.offsets = append(g.offsets, conv.IntToUint32(len(g.buf)))
}

// FinishWithIndexes returns the accumulated IndexedTrace.
func (g *IndexedGenerator) FinishWithIndexes() IndexedTrace {
	return IndexedTrace{trace: g.Generator.Finish(), offsets: g.offsets}
}
