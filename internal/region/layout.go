package region

import (
	"errors"
	"fmt"
	"slices"

	"github.com/retroenv/retrogolib/set"
)

// Layout is a named collection of regions that share one address space and
// one canonical offset. The relation fields describe which layouts can be
// combined when interpreting a ROM.
type Layout struct {
	ID              string
	Name            string
	Origin          Origin
	Confidence      float64 // 0.0 - 1.0
	CanonicalOffset int
	AddressSpace    string
	Regions         []Region
	Tags            []Tag
	Notes           string

	Provides  []string            // capabilities exposed by this layout
	Requires  []string            // layout ids that must also apply
	Excludes  []string            // mutually exclusive layout ids
	Replaces  []string            // layout ids superseded by this layout
	AppliesTo map[string][]string // constraints like "mapper": {"lorom"}
}

// WithOffsetDelta derives a new layout from the receiver with all region
// offsets and the canonical offset shifted by delta. The receiver is not
// modified. Relation metadata is not inherited since it is specific to each
// derived layout.
func (l *Layout) WithOffsetDelta(id, name string, delta int) *Layout {
	regions := make([]Region, len(l.Regions))
	for i, r := range l.Regions {
		regions[i] = r.WithOffsetDelta(delta)
	}

	return &Layout{
		ID:              id,
		Name:            name,
		Origin:          l.Origin,
		Confidence:      l.Confidence,
		CanonicalOffset: l.CanonicalOffset + delta,
		AddressSpace:    l.AddressSpace,
		Regions:         regions,
		Tags:            slices.Clone(l.Tags),
	}
}

// Region returns the region with the given id.
func (l *Layout) Region(id string) (Region, bool) {
	for _, r := range l.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// RequiredRegions returns all regions that are flagged as required.
func (l *Layout) RequiredRegions() []Region {
	var required []Region
	for _, r := range l.Regions {
		if r.Required {
			required = append(required, r)
		}
	}
	return required
}

// ConflictsWith returns whether either layout excludes the other.
func (l *Layout) ConflictsWith(other *Layout) bool {
	return slices.Contains(l.Excludes, other.ID) || slices.Contains(other.Excludes, l.ID)
}

// Applies evaluates the applies-to constraints of the layout against the
// given facts about a ROM. A layout without constraints always applies,
// a constraint on a fact that is unknown does not match.
func (l *Layout) Applies(facts map[string]string) bool {
	for key, allowed := range l.AppliesTo {
		value, ok := facts[key]
		if !ok || !slices.Contains(allowed, value) {
			return false
		}
	}
	return true
}

// Validate checks the invariants of the layout and its regions.
func (l *Layout) Validate() error {
	if l.ID == "" {
		return errors.New("layout id is empty")
	}
	if l.Confidence < 0 || l.Confidence > 1 {
		return fmt.Errorf("layout '%s' has confidence %.2f outside of [0,1]", l.ID, l.Confidence)
	}
	if slices.Contains(l.Excludes, l.ID) {
		return fmt.Errorf("layout '%s' excludes itself", l.ID)
	}

	ids := set.New[string]()
	for _, r := range l.Regions {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("validating layout '%s': %w", l.ID, err)
		}
		if ids.Contains(r.ID) {
			return fmt.Errorf("layout '%s' contains duplicate region '%s'", l.ID, r.ID)
		}
		ids.Add(r.ID)
	}
	return nil
}
