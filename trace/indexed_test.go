package trace

import "testing"

func TestIndexedGeneratorMarks(t *testing.T) {
	g := NewIndexedGenerator(2)
	g.Mark()
	g.OpenSubtree()
	g.PushByte(1)
	g.CloseSubtree()
	g.Mark()
	g.OpenSubtree()
	g.PushByte(2)
	g.CloseSubtree()
	it := g.FinishWithIndexes()

	if it.NumStatements() != 2 {
		t.Fatalf("NumStatements() = %d, want 2", it.NumStatements())
	}
	if it.Offset(0) != 0 {
		t.Fatalf("Offset(0) = %d, want 0", it.Offset(0))
	}
	if it.Offset(1) != 5 {
		t.Fatalf("Offset(1) = %d, want 5", it.Offset(1))
	}
	if it.End(0) != it.Offset(1) {
		t.Fatalf("End(0) = %d, want %d", it.End(0), it.Offset(1))
	}
	if it.End(1) != it.Trace().Len() {
		t.Fatalf("End(1) = %d, want %d", it.End(1), it.Trace().Len())
	}
}
