package trace

import (
	"fmt"
	"testing"
)

func TestGeneratorLiteralBytes(t *testing.T) {
	g := NewGenerator()
	g.PushByte('a')
	g.PushByte(Meta)
	g.PushByte('b')
	tr := g.Finish()
	want := []byte{'a', Meta, Meta, 'b'}
	if !tr.Equal(Trace{buf: want}) {
		t.Fatalf("got %v, want %v", tr.Bytes(), want)
	}
}

func TestGeneratorSubtree(t *testing.T) {
	g := NewGenerator()
	g.OpenSubtree()
	g.PushByte(1)
	g.CloseSubtree()
	tr := g.Finish()
	want := []byte{Meta, Open, 1, Meta, Close}
	if !tr.Equal(Trace{buf: want}) {
		t.Fatalf("got %v, want %v", tr.Bytes(), want)
	}
}

func TestGeneratorDatum(t *testing.T) {
	g := NewGenerator()
	g.OpenDatum()
	g.ExtendBytes([]byte("ab"))
	g.CloseDatum()
	tr := g.Finish()
	// length byte (3) + 2 payload bytes
	want := []byte{3, 'a', 'b'}
	if !tr.Equal(Trace{buf: want}) {
		t.Fatalf("got %v, want %v", tr.Bytes(), want)
	}
}

func TestGeneratorWildcard(t *testing.T) {
	g := NewGenerator()
	g.PushWildcard(5)
	tr := g.Finish()
	want := []byte{Meta, 5}
	if !tr.Equal(Trace{buf: want}) {
		t.Fatalf("got %v, want %v", tr.Bytes(), want)
	}
}

func TestGeneratorFinishWithOpenDatumPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic finishing with an open datum")
		}
	}()
	g := NewGenerator()
	g.OpenDatum()
	g.Finish()
}

func TestCloseDatumWithoutOpenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic closing a datum that was never opened")
		}
	}()
	g := NewGenerator()
	g.CloseDatum()
}

func TestPushWildcardOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range wildcard index")
		}
	}()
	g := NewGenerator()
	g.PushWildcard(0)
}

func ExampleTrace_GoString() {
	g := NewGenerator()
	g.OpenSubtree()
	g.PushByte(0x01)
	g.PushWildcard(2)
	g.CloseSubtree()
	tr := g.Finish()
	fmt.Println(tr.GoString())
	// Output: [01$2]
}
