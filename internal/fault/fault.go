// Package fault contains the isolation boundary that keeps compile and
// render failures from terminating a preview session. It is an explicit
// two-state machine, Clean and Faulted, with reset transitions keyed to
// which session property changed rather than to any UI framework's remount
// behavior.
package fault

import "fmt"

// State of the boundary.
type State int

const (
	Clean State = iota
	Faulted
)

func (s State) String() string {
	if s == Faulted {
		return "faulted"
	}
	return "clean"
}

// RenderFault is a failure during an actual draw call, e.g. a missing
// required attribute. It always escalates to the boundary.
type RenderFault struct {
	Err error
}

func (e *RenderFault) Error() string { return fmt.Sprintf("render fault: %v", e.Err) }
func (e *RenderFault) Unwrap() error { return e.Err }

// Boundary tracks fault state for one session. The reset key is the
// composite of mesh descriptor and lighting mode: changing either clears a
// prior fault even though the source text that caused it is unchanged.
type Boundary struct {
	state  State
	key    string
	reason error
}

// Observe records the current reset key. When the key differs from the one
// under which the boundary last tripped, a Faulted boundary returns to
// Clean. Call on every mesh or lighting-mode change.
func (b *Boundary) Observe(resetKey string) {
	if b.key != resetKey {
		b.key = resetKey
		b.state = Clean
		b.reason = nil
	}
}

// Trip moves the boundary to Faulted with the given cause. The fault stays
// until the reset key changes; tripping again replaces the reason.
func (b *Boundary) Trip(reason error) {
	b.state = Faulted
	b.reason = reason
}

// State returns the current state.
func (b *Boundary) State() State { return b.state }

// Faulted reports whether the boundary is tripped.
func (b *Boundary) Faulted() bool { return b.state == Faulted }

// Reason returns the error that tripped the boundary, nil when Clean.
func (b *Boundary) Reason() error { return b.reason }
