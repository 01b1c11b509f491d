package tui

import (
	"maps"
	"net/url"
	"slices"
)

// State tracks the values collected during a prompt session and the
// validation errors of the previous attempt, keyed by control name.
type State struct {
	values url.Values
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill url.Values, errs map[string][]string) *State {
	s := &State{
		values: make(url.Values, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for name, vs := range prefill {
		s.values[name] = slices.Clone(vs)
	}
	for name, messages := range errs {
		s.errors[name] = slices.Clone(messages)
	}
	return s
}

// Values returns a copy of the collected values.
func (s *State) Values() url.Values {
	if s == nil {
		return nil
	}
	out := make(url.Values, len(s.values))
	for name, vs := range s.values {
		out[name] = slices.Clone(vs)
	}
	return out
}

// Errors returns a copy of the current errors.
func (s *State) Errors() map[string][]string {
	if s == nil {
		return nil
	}
	return maps.Clone(s.errors)
}

// ErrorsFor returns the errors attached to name.
func (s *State) ErrorsFor(name string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[name]
}

// Value returns the collected value for name.
func (s *State) Value(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	vs, ok := s.values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// SetValue records value for name and drops its stale errors. An empty
// value removes name, matching a browser that omits unchecked boxes.
func (s *State) SetValue(name, value string) {
	if s == nil {
		return
	}
	delete(s.errors, name)
	if value == "" {
		delete(s.values, name)
		return
	}
	s.values.Set(name, value)
}
