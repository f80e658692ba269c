package trace

// Delta builds a new Trace while following an old one in lockstep,
// surfacing every point where they structurally disagree (spec.md §4.F).
// reconcile.Reconciler uses it to turn a trace built from literal
// placeholder-identifier text into a pattern trace with wildcards in
// their place: Old tracks the previously recorded trace, New
// accumulates the replacement.
type Delta struct {
	Old *Reader
	New *Transactional
}

// NewDelta creates a Delta that replays old while building a new trace
// of the same approximate size.
func NewDelta(old Trace) *Delta {
	return &Delta{
		Old: NewReader(old),
		New: NewTransactional(),
	}
}

// Finish asserts both sides reached a consistent end state and returns
// the newly built trace.
func (d *Delta) Finish() Trace {
	d.Old.Finish()
	return d.New.Finish()
}

func (d *Delta) PushByte(b byte) {
	d.Old.PushByte(b)
	d.New.PushByte(b)
}

func (d *Delta) ExtendBytes(data []byte) {
	d.Old.ExtendBytes(data)
	d.New.ExtendBytes(data)
}

// OpenSubtree opens on both sides. If the old trace diverges here, the
// divergence is returned immediately and the new side is not opened.
func (d *Delta) OpenSubtree() error {
	if err := d.Old.OpenSubtree(); err != nil {
		return err
	}
	d.New.OpenSubtree()
	return nil
}

// CloseSubtree closes the old side first; on divergence it returns
// immediately without closing the new side, leaving that to the caller
// (reconcile.Reconciler decides, from the diverging node's identity,
// whether to roll back the current subtree or its parent before
// closing New itself).
func (d *Delta) CloseSubtree() error {
	if err := d.Old.CloseSubtree(); err != nil {
		return err
	}
	d.New.CloseSubtree()
	return nil
}

func (d *Delta) OpenDatum() {
	d.Old.OpenDatum()
	d.New.OpenDatum()
}

func (d *Delta) CloseDatum() {
	d.Old.CloseDatum()
	d.New.CloseDatum()
}

// ConsumeMeta delegates to the old side, for callers that need to read a
// wildcard index already present in the old trace (not used by
// reconcile.Reconciler directly, but kept symmetric with Reader).
func (d *Delta) ConsumeMeta() byte {
	return d.Old.ConsumeMeta()
}
