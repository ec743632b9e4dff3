// Package detector resolves the console family and the applicable layouts
// of a loaded ROM.
package detector

import (
	"cmp"
	"slices"

	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/gba"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/sg"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/snes"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
	"github.com/SophiaFrassetto/TransROM-IA/internal/rom"
	"github.com/SophiaFrassetto/TransROM-IA/internal/verification"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Detector handles family detection from file extensions and layout
// refinement from ROM content.
type Detector struct {
	logger   *log.Logger
	families []*family.Family
	verifier *verification.Verifier
}

// DefaultFamilies returns the registry of all built-in families in a fixed
// order.
func DefaultFamilies() []*family.Family {
	return []*family.Family{
		gba.Family,
		snes.Family,
		sg.Family,
	}
}

// New creates a new family detector using the built-in families.
func New(logger *log.Logger) *Detector {
	return NewWithFamilies(logger, DefaultFamilies())
}

// NewWithFamilies creates a new family detector using a custom registry.
func NewWithFamilies(logger *log.Logger, families []*family.Family) *Detector {
	return &Detector{
		logger:   logger,
		families: families,
		verifier: verification.New(logger),
	}
}

// Families returns the registry of the detector.
func (d *Detector) Families() []*family.Family {
	return d.families
}

// Resolve returns all families that list the extension of the ROM. The
// result is empty for missing or unknown extensions.
func (d *Detector) Resolve(r *rom.Rom) []*family.Family {
	ext := rom.NormalizeExtension(r.Extension)
	if ext == "" {
		return []*family.Family{}
	}

	families := []*family.Family{}
	for _, fam := range d.families {
		if fam.HasExtension(ext) {
			families = append(families, fam)
		}
	}

	d.logger.Debug("Resolved families",
		log.String("extension", ext),
		log.Int("count", len(families)))
	return families
}

// ResolveLayouts refines the layouts of a family against the ROM content.
// Layouts whose applies-to constraints do not match the facts derived from
// the header checks are removed, exclusion conflicts are resolved by header
// score and confidence, and finally layouts with unmet requirements are
// dropped. A requirement is met if the required layout is selected or if it
// is excluded by a selected layout, which means that its alternative was
// chosen. If no header layout remains, the minimal layouts of the family
// are returned.
func (d *Detector) ResolveLayouts(r *rom.Rom, fam *family.Family) []*region.Layout {
	ev := d.verifier.Evaluate(fam, r.Data)

	var candidates []*region.Layout
	for _, l := range fam.Layouts {
		if l.Applies(ev.Facts) {
			candidates = append(candidates, l)
		}
	}

	order := make(map[string]int, len(fam.Layouts))
	for i, l := range fam.Layouts {
		order[l.ID] = i
	}
	slices.SortStableFunc(candidates, func(a, b *region.Layout) int {
		if c := cmp.Compare(ev.Score(b.ID), ev.Score(a.ID)); c != 0 {
			return c
		}
		return cmp.Compare(b.Confidence, a.Confidence)
	})

	var selected []*region.Layout
	for _, l := range candidates {
		if !conflicts(l, selected) {
			selected = append(selected, l)
		}
	}
	selected = dropUnmetRequirements(selected)

	slices.SortFunc(selected, func(a, b *region.Layout) int {
		return cmp.Compare(order[a.ID], order[b.ID])
	})

	if !hasDomainLayout(fam, selected, family.DomainHeader) {
		d.logger.Debug("No header layout matched, using minimal layouts",
			log.String("family", fam.ID))
		return minimalLayouts(fam)
	}
	return selected
}

// Enrich resolves the family of the ROM and stores the first matching
// family, its applicable layouts and their regions in the ROM record.
// It returns the resolved families.
func (d *Detector) Enrich(r *rom.Rom) []*family.Family {
	families := d.Resolve(r)
	if len(families) == 0 {
		return families
	}

	fam := families[0]
	layouts := d.ResolveLayouts(r, fam)

	r.FamilyID = fam.ID
	r.LayoutIDs = make([]string, 0, len(layouts))
	r.Regions = nil
	for _, l := range layouts {
		r.LayoutIDs = append(r.LayoutIDs, l.ID)
		r.Regions = append(r.Regions, l.Regions...)
	}

	d.logger.Debug("Enriched ROM",
		log.String("family", fam.ID),
		log.Int("layouts", len(layouts)),
		log.Int("regions", len(r.Regions)))
	return families
}

func conflicts(l *region.Layout, selected []*region.Layout) bool {
	for _, s := range selected {
		if l.ConflictsWith(s) {
			return true
		}
	}
	return false
}

// dropUnmetRequirements removes layouts with unmet requirements until no
// more layouts are removed.
func dropUnmetRequirements(selected []*region.Layout) []*region.Layout {
	for {
		ids := set.New[string]()
		excluded := set.New[string]()
		for _, l := range selected {
			ids.Add(l.ID)
			for _, id := range l.Excludes {
				excluded.Add(id)
			}
		}

		kept := selected[:0:0]
		for _, l := range selected {
			met := true
			for _, id := range l.Requires {
				if !ids.Contains(id) && !excluded.Contains(id) {
					met = false
					break
				}
			}
			if met {
				kept = append(kept, l)
			}
		}

		if len(kept) == len(selected) {
			return kept
		}
		selected = kept
	}
}

func hasDomainLayout(fam *family.Family, layouts []*region.Layout, domain string) bool {
	ids := fam.LayoutDomains[domain]
	if len(ids) == 0 {
		return len(layouts) > 0
	}
	for _, l := range layouts {
		if slices.Contains(ids, l.ID) {
			return true
		}
	}
	return false
}

func minimalLayouts(fam *family.Family) []*region.Layout {
	layouts := make([]*region.Layout, 0, len(fam.MinimalLayouts))
	for _, id := range fam.MinimalLayouts {
		if l, ok := fam.Layout(id); ok {
			layouts = append(layouts, l)
		}
	}
	return layouts
}
