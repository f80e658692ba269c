package trace

// Transactional is a Generator that can discard the subtree currently
// being closed — or that subtree's parent — and splice in a replacement
// in its place (spec.md §4.E). It is how reconcile.Reconciler turns a
// diverged identifier or expression subtree into a wildcard without
// having built the new trace any differently up to that point: the
// content is written as usual, and only discarded retroactively once the
// divergence is recognized.
//
// A rollback targets a depth: 0 means "discard the subtree about to
// close", 1 means "discard that subtree's parent instead, once it in
// turn closes". Only one rollback can be pending at a time.
type Transactional struct {
	buf         []byte
	datum       int // index of the open datum's length byte, or -1
	Replacement *Generator
	stack       []int
	rollbacks   int
}

// NewTransactional creates an empty Transactional builder.
func NewTransactional() *Transactional {
	return &Transactional{datum: -1, Replacement: NewGenerator()}
}

// Finish returns the accumulated Trace. Panics if a rollback is pending
// or the stack is non-empty: both indicate a builder pipeline that never
// reached a consistent state.
func (t *Transactional) Finish() Trace {
	if len(t.stack) != 0 {
		invariant("Finish", "subtree left open")
	}
	if len(t.Replacement.buf) != 0 {
		invariant("Finish", "unspliced replacement left pending")
	}
	if t.rollbacks != 0 {
		invariant("Finish", "rollback left pending")
	}
	if t.datum != -1 {
		invariant("Finish", "datum left open")
	}
	return Trace{buf: t.buf}
}

func (t *Transactional) PushByte(b byte) {
	t.buf = append(t.buf, b)
	if b == Meta {
		t.buf = append(t.buf, Meta)
	}
}

func (t *Transactional) ExtendBytes(data []byte) {
	for _, b := range data {
		t.PushByte(b)
	}
}

func (t *Transactional) OpenDatum() {
	if t.datum != -1 {
		invariant("OpenDatum", "a datum is already open")
	}
	t.buf = append(t.buf, 0)
	t.datum = len(t.buf) - 1
}

func (t *Transactional) CloseDatum() {
	if t.datum == -1 {
		invariant("CloseDatum", "close before open")
	}
	open := t.datum
	t.datum = -1
	diff := len(t.buf) - open
	if diff < 1 || diff > int(MaxDatumLen) {
		invariant("CloseDatum", "datum length %d out of range [1,%d]", diff, MaxDatumLen)
	}
	t.buf[open] = byte(diff)
}

// OpenSubtree records the current position on the rollback stack, then
// appends a subtree-open symbol as usual.
func (t *Transactional) OpenSubtree() {
	t.stack = append(t.stack, len(t.buf))
	t.buf = append(t.buf, Meta, Open)
}

// CloseSubtree appends a subtree-close symbol as usual, then applies any
// pending rollback: if one is pending, the subtree just closed (back to
// the position OpenSubtree recorded) is discarded; once the rollback
// count reaches zero the accumulated Replacement trace is spliced in
// where the discarded content was.
func (t *Transactional) CloseSubtree() {
	t.buf = append(t.buf, Meta, Close)
	n := len(t.stack)
	start := t.stack[n-1]
	t.stack = t.stack[:n-1]
	if t.rollbacks > 0 {
		t.buf = t.buf[:start]
		t.rollbacks--
		if t.rollbacks == 0 {
			t.buf = append(t.buf, t.Replacement.buf...)
			t.Replacement.buf = t.Replacement.buf[:0]
		}
	}
}

// PushWildcard appends a wildcard symbol directly, bypassing any
// rollback bookkeeping. Builders normally write a wildcard into
// Replacement instead; this exists for callers that never open a
// subtree around it.
func (t *Transactional) PushWildcard(k byte) {
	if k < 1 || k > MaxWildcard {
		invariant("PushWildcard", "wildcard index %d out of range [1,%d]", k, MaxWildcard)
	}
	t.buf = append(t.buf, Meta, k)
}

// Rollback arms a rollback targeting the subtree depth levels above the
// one currently closing: 0 discards the current subtree, 1 discards its
// parent. Panics if a rollback is already pending.
func (t *Transactional) Rollback(depth int) {
	if t.rollbacks != 0 {
		invariant("Rollback", "rollback already pending")
	}
	t.rollbacks = depth + 1
}
