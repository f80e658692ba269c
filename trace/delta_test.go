package trace

import "testing"

// TestDeltaIdentPlaceholder reproduces the shape of reconcile.Reconciler's
// CloseIdent handling: a nodes-trace built with a literal identifier name,
// reconciled against a walk that uses an IDENT_<n> placeholder name at the
// same position, producing a trace with a wildcard in its place.
func TestDeltaIdentPlaceholder(t *testing.T) {
	old := buildIdentLike("orig")

	d := NewDelta(old)
	if err := d.OpenSubtree(); err != nil {
		t.Fatalf("OpenSubtree: %v", err)
	}
	d.ExtendBytes([]byte("IDENT_1"))
	if err := d.CloseSubtree(); err == nil {
		t.Fatal("expected divergence: placeholder name differs from stored name")
	} else {
		d.New.Replacement.PushWildcard(1)
		d.New.Rollback(0)
		d.New.CloseSubtree()
	}
	tr := d.Finish()

	want := Trace{buf: []byte{Meta, 1}}
	if !tr.Equal(want) {
		t.Fatalf("got %v, want %v", tr.Bytes(), want.Bytes())
	}
}

// TestDeltaExprPlaceholder reproduces the "replace parent" case: an
// EXPR_<n> placeholder identifier rolls back the enclosing expression
// subtree, not just the identifier's own subtree.
func TestDeltaExprPlaceholder(t *testing.T) {
	old := NewGenerator()
	old.OpenSubtree() // expr
	old.PushByte(0x01)
	old.OpenSubtree() // ident "x"
	old.ExtendBytes([]byte("x"))
	old.CloseSubtree()
	old.CloseSubtree()
	oldTrace := old.Finish()

	d := NewDelta(oldTrace)
	if err := d.OpenSubtree(); err != nil { // expr: matches
		t.Fatalf("expr OpenSubtree: %v", err)
	}
	d.PushByte(0x01)
	if err := d.OpenSubtree(); err != nil { // ident: matches
		t.Fatalf("ident OpenSubtree: %v", err)
	}
	d.ExtendBytes([]byte("EXPR_1"))
	if err := d.CloseSubtree(); err == nil { // ident close: diverges
		t.Fatal("expected divergence on placeholder name")
	} else {
		d.New.Replacement.PushWildcard(1)
		d.New.Rollback(1)
		d.New.CloseSubtree() // closes ident: starts rollback countdown
	}
	if err := d.CloseSubtree(); err != nil { // expr close: matches old
		t.Fatalf("expr CloseSubtree: %v", err)
	}
	tr := d.Finish()

	want := Trace{buf: []byte{Meta, 1}}
	if !tr.Equal(want) {
		t.Fatalf("got %v, want %v", tr.Bytes(), want.Bytes())
	}
}
