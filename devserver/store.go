package devserver

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/grafana/xk6-abtest/common"
)

var (
	// ErrTestNotFound is returned for an unknown test identifier.
	ErrTestNotFound = errors.New("test not found")
	// ErrTestInactive is returned when assigning for a paused test.
	ErrTestInactive = errors.New("test is not active")
	// ErrInvalidDistribution is returned when variant distributions do
	// not add up to 100.
	ErrInvalidDistribution = errors.New("invalid distribution")
	// ErrTestExists is returned when adding a test twice.
	ErrTestExists = errors.New("test already exists")
)

// distributionTolerance absorbs floating point drift in percentages.
const distributionTolerance = 0.01

// Variant is one arm of a test. Distribution is a percentage.
type Variant struct {
	ID           string
	Distribution float64
	Sections     []common.Section
}

// Test is an experiment known to the server.
type Test struct {
	ID       string
	Name     string
	Variants []Variant
	Active   bool
}

// Impression is recorded for every assignment.
type Impression struct {
	ID        string
	TestID    string
	VariantID string
	Time      time.Time
}

// Conversion is recorded for every reported event.
type Conversion struct {
	ID        string
	TestID    string
	VariantID string
	Event     string
	Time      time.Time
}

// VariantCounts aggregates the records of a single variant.
type VariantCounts struct {
	VariantID   string
	Impressions int
	Conversions int
}

// Rate returns conversions per impression rounded to three decimals.
func (c VariantCounts) Rate() float64 {
	if c.Impressions == 0 {
		return 0
	}
	return math.Round(float64(c.Conversions)/float64(c.Impressions)*1000) / 1000
}

// Store keeps tests, impressions and conversions in memory.
type Store struct {
	mu          sync.RWMutex
	tests       map[string]*Test
	impressions []Impression
	conversions []Conversion

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		tests: make(map[string]*Test),
		now:   time.Now,
	}
}

func validateDistribution(variants []Variant) error {
	if len(variants) == 0 {
		return fmt.Errorf("%w: a test needs at least one variant", ErrInvalidDistribution)
	}
	var total float64
	for _, v := range variants {
		if v.Distribution < 0 {
			return fmt.Errorf("%w: variant %q has a negative distribution", ErrInvalidDistribution, v.ID)
		}
		total += v.Distribution
	}
	if math.Abs(total-100) > distributionTolerance {
		return fmt.Errorf("%w: total distribution must equal 100, got %g", ErrInvalidDistribution, total)
	}

	return nil
}

// AddTest stores an active test.
func (s *Store) AddTest(t Test) error {
	if err := validateDistribution(t.Variants); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tests[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrTestExists, t.ID)
	}
	t.Active = true
	t.Variants = append([]Variant{}, t.Variants...)
	s.tests[t.ID] = &t

	return nil
}

// UpdateTest replaces the name and variants of an existing test keeping
// its status.
func (s *Store) UpdateTest(t Test) error {
	if err := validateDistribution(t.Variants); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tests[t.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTestNotFound, t.ID)
	}
	cur.Name = t.Name
	cur.Variants = append([]Variant{}, t.Variants...)

	return nil
}

// SetActive pauses or resumes a test.
func (s *Store) SetActive(testID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tests[testID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTestNotFound, testID)
	}
	t.Active = active

	return nil
}

// Test returns a copy of the test with testID.
func (s *Store) Test(testID string) (Test, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tests[testID]
	if !ok {
		return Test{}, fmt.Errorf("%w: %s", ErrTestNotFound, testID)
	}
	cp := *t
	cp.Variants = append([]Variant{}, t.Variants...)

	return cp, nil
}

// ActiveTest is like Test but fails for paused tests.
func (s *Store) ActiveTest(testID string) (Test, error) {
	t, err := s.Test(testID)
	if err != nil {
		return Test{}, err
	}
	if !t.Active {
		return Test{}, fmt.Errorf("%w: %s", ErrTestInactive, testID)
	}

	return t, nil
}

// AddImpression records that variantID was handed out for testID.
func (s *Store) AddImpression(testID, variantID string) Impression {
	s.mu.Lock()
	defer s.mu.Unlock()

	imp := Impression{
		ID:        uuid.NewString(),
		TestID:    testID,
		VariantID: variantID,
		Time:      s.now().UTC(),
	}
	s.impressions = append(s.impressions, imp)

	return imp
}

// AddConversion records a conversion event. The test must exist.
func (s *Store) AddConversion(testID, variantID, event string) (Conversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tests[testID]; !ok {
		return Conversion{}, fmt.Errorf("%w: %s", ErrTestNotFound, testID)
	}
	conv := Conversion{
		ID:        uuid.NewString(),
		TestID:    testID,
		VariantID: variantID,
		Event:     event,
		Time:      s.now().UTC(),
	}
	s.conversions = append(s.conversions, conv)

	return conv, nil
}

// Conversions returns the conversions recorded for testID in order.
func (s *Store) Conversions(testID string) []Conversion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Conversion
	for _, c := range s.conversions {
		if c.TestID == testID {
			out = append(out, c)
		}
	}

	return out
}

// Counts returns the impressions and conversions of every variant of
// testID in variant order.
func (s *Store) Counts(testID string) ([]VariantCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tests[testID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTestNotFound, testID)
	}

	idx := make(map[string]int, len(t.Variants))
	counts := make([]VariantCounts, len(t.Variants))
	for i, v := range t.Variants {
		counts[i].VariantID = v.ID
		idx[v.ID] = i
	}
	for _, imp := range s.impressions {
		if i, ok := idx[imp.VariantID]; ok && imp.TestID == testID {
			counts[i].Impressions++
		}
	}
	for _, c := range s.conversions {
		if i, ok := idx[c.VariantID]; ok && c.TestID == testID {
			counts[i].Conversions++
		}
	}

	return counts, nil
}

// TestIDs returns the identifiers of all stored tests.
func (s *Store) TestIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.tests))
	for id := range s.tests {
		ids = append(ids, id)
	}

	return ids
}
