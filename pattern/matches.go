package pattern

import (
	"github.com/kazcw/comacro/ast"
	"github.com/kazcw/comacro/bind"
	"github.com/kazcw/comacro/match"
	"github.com/kazcw/comacro/trace"
)

// Match is one match of a compiled Pattern against an input, carrying
// the AST-level bindings spec.md §6 describes (an ordered list of
// Ident/Expr references into the original input, recovered by
// bind.Binder).
//
// StartIndex is meaningful only for StatementSequence patterns: the
// top-level statement index the matched window begins at. Start/End are
// meaningful only for SingleExpression patterns: the byte range of the
// matched subtree within the input's trace, as match.InternalMatches
// reported it.
type Match struct {
	Bindings   bind.Bindings
	StartIndex int
	Start, End int
}

// Matches finds every occurrence of p in input, whose indexed trace is
// inputTrace (built with trace.IndexedGenerator/FinishWithIndexes over
// the same statements input walks).
//
// For a StatementSequence pattern, input must implement ast.StmtSlicer
// so each matching window's statements can be re-walked on their own
// (spec.md §4.H's top-level search reports only a window index; binding
// it back to host nodes needs that window in isolation). For a
// SingleExpression pattern, input is walked in full — the two-pass
// extraction described in spec.md §4.I needs the complete statement
// sequence to locate the matched subtree.
func Matches(p Pattern, input ast.StmtSeq, inputTrace trace.IndexedTrace) []Match {
	if p.kind == SingleExpression {
		return exprMatches(p, input, inputTrace)
	}
	return stmtSeqMatches(p, input, inputTrace)
}

func stmtSeqMatches(p Pattern, input ast.StmtSeq, inputTrace trace.IndexedTrace) []Match {
	slicer, ok := input.(ast.StmtSlicer)
	if !ok {
		panic("pattern: StatementSequence matching requires input to implement ast.StmtSlicer")
	}
	indices := match.ToplevelMatches(p.trace, inputTrace, p.toplevelLen)
	out := make([]Match, 0, len(indices))
	for _, i := range indices {
		window := slicer.Slice(i, i+p.toplevelLen)
		bindings := bind.BindStmts(p.trace, window)
		out = append(out, Match{Bindings: bindings, StartIndex: i})
	}
	return out
}

func exprMatches(p Pattern, input ast.StmtSeq, inputTrace trace.IndexedTrace) []Match {
	var hits []match.InternalMatch
	if p.tracker != nil {
		hits = match.InternalMatchesFiltered(p.trace, inputTrace.Trace(), p.tracker)
	} else {
		hits = match.InternalMatches(p.trace, inputTrace.Trace())
	}
	return BindExprHits(p, input, hits)
}

// BindExprHits converts raw byte-range internal matches into AST-level
// Matches via the two-pass bind.Binder walk spec.md §4.I describes.
// Exposed (not just used internally by exprMatches) so a caller that
// locates hits some other way — engine.Set's shared multi-pattern
// literal scan, most notably — can still recover bindings through the
// same pipeline a single Pattern uses once it knows which of its member
// patterns a hit belongs to.
func BindExprHits(p Pattern, input ast.StmtSeq, hits []match.InternalMatch) []Match {
	out := make([]Match, 0, len(hits))
	for _, hit := range hits {
		// First pass: walk the full input against the synthesized trace
		// (the input with the matched subtree replaced by wildcard 1) to
		// recover the matched ast.Expr node itself.
		located := bind.BindStmts(hit.Synthesized, input)
		matchedExpr := located[0].Expr

		// Second pass: walk just that subtree against the original
		// pattern to recover its own wildcard bindings.
		bindings := bind.BindExpr(p.trace, matchedExpr)
		out = append(out, Match{Bindings: bindings, Start: hit.Start, End: hit.End})
	}
	return out
}
