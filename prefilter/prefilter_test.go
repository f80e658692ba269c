package prefilter

import (
	"testing"

	"github.com/kazcw/comacro/literal"
)

func TestSelectPrefilterEmpty(t *testing.T) {
	if pf := NewBuilder(literal.NewSeq()).Build(); pf != nil {
		t.Fatalf("got %v, want nil for an empty literal set", pf)
	}
}

func TestSelectPrefilterSingleByte(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte{0x01}, true))
	pf := NewBuilder(seq).Build()
	if pf == nil {
		t.Fatalf("got nil, want a byte prefilter")
	}
	haystack := []byte{0x00, 0x00, 0x01, 0x02}
	if got := pf.Find(haystack, 0); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if got := pf.Find(haystack, 3); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestSelectPrefilterSingleSubstring(t *testing.T) {
	needle := []byte{0x01, 0x02, 0x03}
	seq := literal.NewSeq(literal.NewLiteral(needle, true))
	pf := NewBuilder(seq).Build()
	haystack := []byte{0x00, 0x01, 0x02, 0x03, 0x04}
	if got := pf.Find(haystack, 0); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if pf.HeapBytes() != len(needle) {
		t.Fatalf("got HeapBytes %d, want %d", pf.HeapBytes(), len(needle))
	}
}

func TestSelectPrefilterMultipleLiteralsUsesAhoCorasick(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte{0x10, 0x11}, true),
		literal.NewLiteral([]byte{0x20, 0x21}, true),
	)
	pf := NewBuilder(seq).Build()
	if pf == nil {
		t.Fatalf("got nil, want a multi-literal prefilter")
	}
	if _, ok := pf.(*ahoCorasickPrefilter); !ok {
		t.Fatalf("got %T, want *ahoCorasickPrefilter", pf)
	}
	haystack := []byte{0x00, 0x20, 0x21, 0x00}
	if got := pf.Find(haystack, 0); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestBytePrefilterOutOfRangeStart(t *testing.T) {
	pf := newBytePrefilter(0x01)
	if got := pf.Find([]byte{0x01}, 5); got != -1 {
		t.Fatalf("got %d, want -1 for a start past the end of the haystack", got)
	}
	if got := pf.Find([]byte{0x01}, -1); got != -1 {
		t.Fatalf("got %d, want -1 for a negative start", got)
	}
}
