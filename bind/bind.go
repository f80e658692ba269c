// Package bind walks a host AST against an already-matched pattern
// trace and recovers the subtree each of the pattern's wildcards bound
// to (spec.md §4.H). It is the read side of reconcile: reconcile turns
// metavariable occurrences into wildcards when compiling a pattern;
// bind recovers what those wildcards stood for once a match has been
// found against a real input.
package bind

import (
	"github.com/kazcw/comacro/ast"
	"github.com/kazcw/comacro/trace"
)

// Kind discriminates which host node type a Binding captured.
type Kind int

const (
	// BoundIdent means the wildcard matched a bare identifier position.
	BoundIdent Kind = iota
	// BoundExpr means the wildcard matched an expression subtree.
	BoundExpr
)

// Binding is the host AST node a single wildcard bound to, equivalent
// to the original Rust `Binding<'ast>` enum (one of Expr or Ident),
// expressed in Go as a tagged union since Go lacks sum types.
type Binding struct {
	Kind  Kind
	Ident ast.Ident
	Expr  ast.Expr
}

// Bindings is the full set of wildcard bindings produced by a match,
// indexed by wildcard index minus one (wildcard 1 is Bindings[0]). A
// nil entry means that wildcard was never reached during the walk,
// which should not happen for a trace Binder walked to completion.
type Bindings []*Binding

// binderOps adapts trace.Reader's fallible OpenSubtree/CloseSubtree to
// ast.Ops's infallible signature for the positions where Binder never
// expects divergence (everywhere but OpenExpr/OpenIdent, which override
// Base directly and handle divergence themselves).
type binderOps struct {
	r *trace.Reader
}

func (o *binderOps) OpenSubtree() {
	if err := o.r.OpenSubtree(); err != nil {
		panic(&StructuralMismatchError{Op: "OpenSubtree"})
	}
}

func (o *binderOps) CloseSubtree() {
	if err := o.r.CloseSubtree(); err != nil {
		panic(&StructuralMismatchError{Op: "CloseSubtree"})
	}
}

func (o *binderOps) OpenDatum()           { o.r.OpenDatum() }
func (o *binderOps) CloseDatum()          { o.r.CloseDatum() }
func (o *binderOps) PushByte(b byte)      { o.r.PushByte(b) }
func (o *binderOps) ExtendBytes(b []byte) { o.r.ExtendBytes(b) }

// Binder is an ast.Visitor that walks a host AST known to match a
// compiled pattern trace, recording the node at each wildcard position.
// The first visit to a given wildcard index wins: later occurrences of
// the same metavariable are not re-checked here (match.IsMatch has
// already required repeats to be byte-equal); a repeated metavariable
// always binds to its first occurrence.
type Binder struct {
	*ast.Base
	r        *trace.Reader
	bindings Bindings
}

// NewBinder creates a Binder that walks a host AST against pat,
// recording wildcard bindings as it goes. pat must already be known to
// match the AST (via match.IsMatch or a match iterator); Binder does
// not re-verify the match and panics on any structural disagreement
// that isn't a wildcard.
func NewBinder(pat trace.Trace) *Binder {
	r := trace.NewReader(pat)
	return &Binder{
		Base: ast.NewBase(&binderOps{r: r}),
		r:    r,
	}
}

// OpenExpr descends into expr's children unless the pattern trace has
// a wildcard at this position, in which case it records expr as that
// wildcard's binding and refuses descent.
func (b *Binder) OpenExpr(expr ast.Expr) error {
	if err := b.r.OpenSubtree(); err != nil {
		idx := int(b.r.ConsumeMeta()) - 1
		b.record(idx, &Binding{Kind: BoundExpr, Expr: expr})
		return err
	}
	return nil
}

// OpenIdent descends into ident unless the pattern trace has a
// wildcard at this position, in which case it records ident as that
// wildcard's binding and refuses descent.
func (b *Binder) OpenIdent(ident ast.Ident) error {
	if err := b.r.OpenSubtree(); err != nil {
		idx := int(b.r.ConsumeMeta()) - 1
		b.record(idx, &Binding{Kind: BoundIdent, Ident: ident})
		return err
	}
	return nil
}

func (b *Binder) record(idx int, bind *Binding) {
	if idx >= len(b.bindings) {
		grown := make(Bindings, idx+1)
		copy(grown, b.bindings)
		b.bindings = grown
	}
	// First binding wins: a metavariable's first occurrence fixes its
	// value.
	if b.bindings[idx] == nil {
		b.bindings[idx] = bind
	}
}

// Finish consumes the remainder of the pattern trace (verifying it was
// fully read) and returns the recorded bindings, one per wildcard
// index encountered, in order.
func (b *Binder) Finish() Bindings {
	b.r.Finish()
	return b.bindings
}

// BindStmts walks stmts against pat (a statement-sequence pattern
// trace already known to match) and returns the bindings recovered for
// each of pat's wildcards.
func BindStmts(pat trace.Trace, stmts ast.StmtSeq) Bindings {
	b := NewBinder(pat)
	stmts.WalkStmts(b)
	return b.Finish()
}

// BindExpr walks expr against pat (a single-expression pattern trace
// already known to match) and returns the bindings recovered for each
// of pat's wildcards.
func BindExpr(pat trace.Trace, expr ast.Expr) Bindings {
	b := NewBinder(pat)
	expr.WalkExpr(b)
	return b.Finish()
}
