package ast

// StmtSeq is a host value for an ordered sequence of top-level
// statements capable of driving a Visitor across all of them in order.
// A concrete host AST implements this over its own statement-list type;
// comacro never constructs or inspects one directly.
type StmtSeq interface {
	WalkStmts(v Visitor)
}

// Expr is a single host expression node capable of driving a Visitor
// over itself and its children.
type Expr interface {
	WalkExpr(v Visitor)
}
