// Package pattern ties reconcile, match, and bind together into the
// public compiled-pattern API: a Pattern is a reconciled trace plus the
// kind tag spec.md §3 assigns it at parse time, and Matches walks an
// input to produce bound, AST-level results instead of the raw
// byte-range hits match.ToplevelMatches/InternalMatches return on their
// own.
//
// Selecting which Def constructor to use (StatementSequence vs
// SingleExpression) is the caller's job: spec.md §3's selection rule
// ("single-expression if the source pattern contains exactly one
// expression statement, else statement-sequence") is a property of the
// host language's own statement grammar, which is out of scope here
// (spec.md §1) — comacro only defines what a Pattern of each kind means
// once selected.
package pattern

import (
	"github.com/kazcw/comacro/ast"
	"github.com/kazcw/comacro/config"
	"github.com/kazcw/comacro/literal"
	"github.com/kazcw/comacro/prefilter"
	"github.com/kazcw/comacro/reconcile"
	"github.com/kazcw/comacro/trace"
)

// Kind discriminates the two pattern shapes spec.md §3 defines.
type Kind int

const (
	// StatementSequence patterns match a run of top-level sibling
	// statements via match.ToplevelMatches.
	StatementSequence Kind = iota
	// SingleExpression patterns match anywhere inside an input's
	// expression subtrees via match.InternalMatches.
	SingleExpression
)

func (k Kind) String() string {
	if k == SingleExpression {
		return "SingleExpression"
	}
	return "StatementSequence"
}

// Def is an uncompiled pattern definition: two parse trees of the same
// pattern source (spec.md §2's "nodes"/"ids" data flow), produced by an
// external preprocessor that has already renamed metavariable
// occurrences to IDENT_<n>/EXPR_<n> placeholders in Ids while leaving
// Nodes with the metavariables' own dummy names. Use NewStmtSeqDef or
// NewExprDef rather than constructing this directly.
type Def struct {
	kind      Kind
	stmtNodes ast.StmtSeq
	stmtIds   ast.StmtSeq
	exprNodes ast.Expr
	exprIds   ast.Expr
}

// NewStmtSeqDef defines a statement-sequence pattern from a pair of
// parse trees over the host's top-level statement-list type.
func NewStmtSeqDef(nodes, ids ast.StmtSeq) Def {
	return Def{kind: StatementSequence, stmtNodes: nodes, stmtIds: ids}
}

// NewExprDef defines a single-expression pattern from a pair of parse
// trees over the host's expression type.
func NewExprDef(nodes, ids ast.Expr) Def {
	return Def{kind: SingleExpression, exprNodes: nodes, exprIds: ids}
}

// Pattern is a compiled, matchable pattern: spec.md's Pattern type,
// carrying its Trace and kind tag (§3). Patterns are compiled once and
// matched many times (§5); a Pattern's Trace is shared immutably across
// concurrent matchers.
type Pattern struct {
	kind        Kind
	trace       trace.Trace
	toplevelLen int

	// tracker accelerates exprMatches's internal search when this
	// pattern's trace has a usable required-prefix literal (see
	// literal.Extractor.RequiredPrefix). Only ever set for
	// SingleExpression patterns — ToplevelMatches already only visits a
	// bounded number of candidate windows and gets no benefit from a
	// literal scan (see SPEC_FULL.md's DOMAIN STACK section).
	tracker *prefilter.Tracker
}

// Compile reconciles def's two parse trees into a pattern Trace (spec.md
// §4.G), records its kind, and — with config.DefaultConfig()'s
// prefiltering enabled — extracts a required-prefix literal to
// accelerate later expression search. Use CompileWithConfig to control
// or disable that.
func Compile(def Def) Pattern {
	return CompileWithConfig(def, config.DefaultConfig())
}

// CompileWithConfig is Compile with an explicit config.Config, governing
// whether and how aggressively a required-prefix literal is extracted
// for prefiltering (config.Config.EnablePrefilter/MinLiteralLen).
func CompileWithConfig(def Def, cfg config.Config) Pattern {
	if def.kind == SingleExpression {
		t := reconcile.CompileExpr(def.exprNodes, def.exprIds)
		p := Pattern{kind: SingleExpression, trace: t}
		if cfg.EnablePrefilter {
			if lit, ok := literal.New(cfg).RequiredPrefix(t); ok {
				pf := prefilter.NewBuilder(literal.NewSeq(lit)).Build()
				p.tracker = prefilter.NewTracker(pf)
			}
		}
		return p
	}
	t := reconcile.CompileStmts(def.stmtNodes, def.stmtIds)
	return Pattern{kind: StatementSequence, trace: t, toplevelLen: countToplevel(t)}
}

// Kind reports whether this is a statement-sequence or single-expression
// pattern.
func (p Pattern) Kind() Kind { return p.kind }

// Trace returns the compiled pattern trace.
func (p Pattern) Trace() trace.Trace { return p.trace }

// ToplevelLen returns the number of top-level sibling subtrees the
// pattern's trace spans. Only meaningful for StatementSequence patterns;
// it is the window width match.ToplevelMatches anchors (SPEC_FULL.md's
// resolution of spec.md §9's open question about multi-statement
// patterns).
func (p Pattern) ToplevelLen() int { return p.toplevelLen }

// countToplevel counts the subtree-open symbols at depth zero in t —
// computed once at compile time rather than on every search.
func countToplevel(t trace.Trace) int {
	buf := t.Bytes()
	depth := 0
	count := 0
	for i := 0; i < len(buf); {
		if buf[i] != trace.Meta {
			i++
			continue
		}
		switch buf[i+1] {
		case trace.Open:
			if depth == 0 {
				count++
			}
			depth++
		case trace.Close:
			depth--
		}
		i += 2
	}
	return count
}
