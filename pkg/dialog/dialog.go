// Package dialog models the two-state modal used by both widgets to host
// their data-entry form.
package dialog

import "sync"

// State is the dialog visibility.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// KeyEscape is the key name whose default dismissal is suppressed.
const KeyEscape = "Escape"

// Option configures a Dialog.
type Option func(*Dialog)

// WithLoader registers a lazy loader fired the first time the dialog opens.
// The loader runs at most once per dialog and its completion is not awaited
// by callers of Open beyond the call itself.
func WithLoader(fn func()) Option {
	return func(d *Dialog) {
		d.loader = fn
	}
}

// WithResetHook registers the hook run after a successful submit, typically
// clearing the form's values.
func WithResetHook(fn func()) Option {
	return func(d *Dialog) {
		d.reset = fn
	}
}

// WithStateListener registers a callback invoked on every transition.
func WithStateListener(fn func(State)) Option {
	return func(d *Dialog) {
		d.listener = fn
	}
}

// Dialog is a modal lifecycle. It is not safe for concurrent use except for
// the lazy loader, which is guarded by sync.Once.
type Dialog struct {
	state    State
	loader   func()
	reset    func()
	listener func(State)
	once     sync.Once
}

// New returns a closed dialog.
func New(opts ...Option) *Dialog {
	d := &Dialog{state: Closed}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// State reports the current state.
func (d *Dialog) State() State {
	return d.state
}

// IsOpen reports whether the dialog is open.
func (d *Dialog) IsOpen() bool {
	return d.state == Open
}

// Open transitions closed→open and triggers the lazy loader. Opening an open
// dialog is a no-op.
func (d *Dialog) Open() {
	if d.loader != nil {
		d.once.Do(d.loader)
	}
	d.transition(Open)
}

// Cancel transitions open→closed without side effects.
func (d *Dialog) Cancel() {
	d.transition(Closed)
}

// Close closes the dialog programmatically.
func (d *Dialog) Close() {
	d.transition(Closed)
}

// Submit runs the reset hook and transitions to closed. It always closes,
// independent of what listeners later do with the submitted data.
func (d *Dialog) Submit() {
	if d.reset != nil {
		d.reset()
	}
	d.transition(Closed)
}

// HandleKey reports whether key was consumed. Escape is swallowed so the
// dialog is only dismissed through its explicit controls.
func (d *Dialog) HandleKey(key string) bool {
	return key == KeyEscape
}

// HandleCancelGesture swallows implicit cancel requests (backdrop clicks,
// platform cancel events). It always reports true and never changes state.
func (d *Dialog) HandleCancelGesture() bool {
	return true
}

func (d *Dialog) transition(next State) {
	if d.state == next {
		return
	}
	d.state = next
	if d.listener != nil {
		d.listener(next)
	}
}
