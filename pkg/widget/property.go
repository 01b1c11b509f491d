package widget

// Property is an identity-tracked input. A new value counts as a change only
// when it is a different reference from the current one; mutating the
// referenced value in place is not observed. Hosts that want a recompute
// supply a new pointer.
type Property[T any] struct {
	value   *T
	version uint64
}

// Set stores value and reports whether the reference changed.
func (p *Property[T]) Set(value *T) bool {
	if p.value == value {
		return false
	}
	p.value = value
	p.version++
	return true
}

// Get returns the current reference, possibly nil.
func (p *Property[T]) Get() *T {
	return p.value
}

// Version counts observed reference changes.
func (p *Property[T]) Version() uint64 {
	return p.version
}
