package ast

// StmtSlicer is implemented by a host StmtSeq that can also extract a
// contiguous sub-sequence by top-level statement index. pattern.Matches
// needs it to bind a statement-sequence window back to host AST nodes:
// match.ToplevelMatches only reports which window of top-level
// statements matched, by index, and recovering the actual bound nodes
// requires walking bind.Binder over just that window, not the whole
// input.
//
// Out of scope for spec.md itself (the host AST is an external
// collaborator throughout), but a minimal capability any host wrapping
// a statement slice (the common case — spec.md assumes the input is
// "an input program", i.e. something with an ordered top-level
// statement list) can implement trivially, the way toyast.StmtSeq does
// by reslicing its underlying Go slice.
type StmtSlicer interface {
	StmtSeq
	// Slice returns the sub-sequence of top-level statements
	// [start, end), in the same order WalkStmts would visit them.
	Slice(start, end int) StmtSeq
}
