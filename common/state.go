package common

import (
	"sync"

	"gopkg.in/guregu/null.v3"
)

type assignStatus int

const (
	assignStarted assignStatus = iota
	assignBusy
	assignDone
)

// State holds the experiment assignment of the current page. Only the
// assignment path writes to it; everything else reads.
type State struct {
	mu          sync.RWMutex
	variantID   null.String
	sections    []Section
	initialized bool
	inFlight    bool

	subsMu sync.Mutex
	subs   []func(StateSnapshot)
}

// NewState returns an empty, uninitialized state.
func NewState() *State {
	return &State{sections: []Section{}}
}

// VariantID returns the assigned variant and whether there is one.
func (s *State) VariantID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variantID.String, s.variantID.Valid
}

// Sections returns a copy of the sections of the assigned variant.
func (s *State) Sections() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySections(s.sections)
}

// IsInitialized reports whether an assignment has been published.
func (s *State) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// AssignmentInFlight reports whether an assignment request is outstanding.
func (s *State) AssignmentInFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight
}

// Snapshot returns a consistent copy of the host-visible fields.
func (s *State) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *State) snapshot() StateSnapshot {
	return StateSnapshot{
		VariantID:     s.variantID,
		Sections:      copySections(s.sections),
		IsInitialized: s.initialized,
	}
}

// OnChange registers fn to be called with the new snapshot every time an
// assignment is published.
func (s *State) OnChange(fn func(StateSnapshot)) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = append(s.subs, fn)
}

// beginAssignment sets the in-flight flag unless a request is already
// outstanding or a variant is already assigned.
func (s *State) beginAssignment() (ExperimentAssignment, assignStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.initialized:
		return ExperimentAssignment{VariantID: s.variantID.String, Sections: copySections(s.sections)}, assignDone
	case s.inFlight:
		return ExperimentAssignment{}, assignBusy
	}
	s.inFlight = true

	return ExperimentAssignment{}, assignStarted
}

func (s *State) endAssignment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// publish stores the assignment. Variant and sections are written in the
// same critical section that sets initialized, so readers never observe
// a partially updated state.
func (s *State) publish(a ExperimentAssignment) bool {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return false
	}
	s.variantID = null.StringFrom(a.VariantID)
	s.sections = copySections(a.Sections)
	s.initialized = true
	snap := s.snapshot()
	s.mu.Unlock()

	s.subsMu.Lock()
	subs := append([]func(StateSnapshot){}, s.subs...)
	s.subsMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}

	return true
}

// currentVariant returns the variant to attribute conversions to.
func (s *State) currentVariant() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized || !s.variantID.Valid || s.variantID.String == "" {
		return "", false
	}
	return s.variantID.String, true
}

func copySections(in []Section) []Section {
	out := make([]Section, len(in))
	copy(out, in)
	return out
}
