// Package ast defines the host AST visitor contract (spec.md §6): the
// only coupling between comacro's trace engine and a concrete host
// language. Nothing in this package parses or walks a real AST — that is
// an external collaborator's job (spec.md §1's Non-goals). It only
// describes, as Go interfaces, the sequence of calls any host visitor
// must issue, and supplies Base, a set of default open/close behaviors a
// concrete visitor can embed and override selectively — the Go
// equivalent of the default trait methods on comacro's Rust ancestor's
// `Visitor` trait (`_examples/original_source/src/ast/visitor.rs`).
package ast

// Ops is the six low-level trace primitives every concrete visitor
// ultimately bottoms out in: open/close a subtree, open/close a datum,
// and push literal bytes. trace.Generator, trace.IndexedGenerator and
// trace.Transactional implement Ops directly; trace.Reader and
// trace.Delta return an error from OpenSubtree/CloseSubtree, so bind and
// reconcile wrap them in small adapters that do implement Ops.
type Ops interface {
	OpenSubtree()
	CloseSubtree()
	OpenDatum()
	CloseDatum()
	PushByte(b byte)
	ExtendBytes(b []byte)
}

// Ident is the minimal handle a host identifier node must expose: its
// textual name. bind.Binder stores the node itself (not just the name)
// as a Binding when a wildcard matches an identifier position, so a
// caller can recover whatever richer host-specific data the concrete
// type carries via a type assertion.
type Ident interface {
	Name() string
}

// Visitor is the contract a host AST walk drives, one call per syntactic
// node, in the order: open the node, optionally push a discriminant
// byte, recurse into children, close the node (spec.md §6).
//
// OpenExpr and OpenIdent may return a non-nil error to refuse descent
// into the node's children — this is how the Reader-backed visitors
// (reconcile.Reconciler, bind.Binder) signal "a wildcard lives here,
// stop walking this subtree" without the walk needing to know about
// wildcards at all. They take the node being opened so bind.Binder can
// record it as a binding without needing a second pass over the AST.
type Visitor interface {
	OpenStmt()
	CloseStmt()

	OpenExpr(x Expr) error
	CloseExpr()

	OpenIdent(x Ident) error
	// CloseIdent is called with the identifier's textual name. Most
	// visitors ignore it (the name bytes are pushed separately, between
	// OpenIdent and CloseIdent, via ExtendBytes); reconcile.Reconciler
	// inspects it to recognize IDENT_<n>/EXPR_<n> placeholders.
	CloseIdent(name string)

	// OpenPattern/ClosePattern bracket the host language's own "pattern"
	// construct (e.g. a `let` binding's left-hand side) — unrelated to
	// comacro's matching patterns; named this way only because spec.md
	// §6 names it that way.
	OpenPattern()
	ClosePattern()

	OpenIntLiteral()
	CloseIntLiteral()

	Ops
}

// Base implements Visitor's default open/close behavior on top of an
// embedded Ops: statements, expressions, patterns, and identifiers open
// and close a subtree; integer literals open and close a datum with no
// subtree wrapper (spec.md §3: an identifier hole is a degenerate
// single-symbol subtree, so identifiers need a subtree boundary to be
// replaceable by a wildcard; integer literals are never hole-bearing and
// so are recorded as plain datum leaves with no such boundary).
//
// Concrete visitors embed *Base and override only the methods whose
// behavior differs from this default — e.g. reconcile.Reconciler
// overrides only CloseIdent, bind.Binder overrides only OpenExpr and
// OpenIdent.
type Base struct {
	Ops
}

// NewBase wraps ops with the default Visitor behavior.
func NewBase(ops Ops) *Base {
	return &Base{Ops: ops}
}

func (b *Base) OpenStmt()  { b.OpenSubtree() }
func (b *Base) CloseStmt() { b.CloseSubtree() }

func (b *Base) OpenExpr(Expr) error {
	b.OpenSubtree()
	return nil
}
func (b *Base) CloseExpr() { b.CloseSubtree() }

func (b *Base) OpenIdent(Ident) error {
	b.OpenSubtree()
	return nil
}
func (b *Base) CloseIdent(string) { b.CloseSubtree() }

func (b *Base) OpenPattern()  { b.OpenSubtree() }
func (b *Base) ClosePattern() { b.CloseSubtree() }

func (b *Base) OpenIntLiteral()  { b.OpenDatum() }
func (b *Base) CloseIntLiteral() { b.CloseDatum() }
