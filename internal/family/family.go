// Package family defines console families that bundle hardware descriptors
// and the known byte layouts of their ROM images.
package family

import (
	"fmt"
	"slices"

	"github.com/SophiaFrassetto/TransROM-IA/internal/hardware"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
	"github.com/retroenv/retrogolib/set"
)

// Layout domain names used to group layout ids by purpose.
const (
	DomainHeader    = "header"
	DomainExecution = "execution"
	DomainMemory    = "memory"
	DomainSystem    = "system"
)

// Family is a console platform definition. Families are static values that
// are created once and never modified at runtime.
type Family struct {
	ID               string
	Name             string
	Extensions       []string // lowercase including the leading dot
	Hardware         hardware.FamilyHardware
	DefaultCartridge hardware.CartridgeHardware
	Layouts          []*region.Layout
	MinimalLayouts   []string            // smallest set of layouts that identifies the family
	LayoutDomains    map[string][]string // layout ids grouped by domain
	Notes            string
}

// Layout returns the layout with the given id.
func (f *Family) Layout(id string) (*region.Layout, bool) {
	for _, l := range f.Layouts {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Domain returns the layouts that belong to the given domain.
func (f *Family) Domain(name string) []*region.Layout {
	var layouts []*region.Layout
	for _, id := range f.LayoutDomains[name] {
		if l, ok := f.Layout(id); ok {
			layouts = append(layouts, l)
		}
	}
	return layouts
}

// HasExtension returns whether the normalized extension belongs to the family.
func (f *Family) HasExtension(ext string) bool {
	return slices.Contains(f.Extensions, ext)
}

// Validate checks that all layouts are valid and that every layout id
// referenced by the family or by layout relations exists.
func (f *Family) Validate() error {
	ids := set.New[string]()
	for _, l := range f.Layouts {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("validating family '%s': %w", f.ID, err)
		}
		if ids.Contains(l.ID) {
			return fmt.Errorf("family '%s' contains duplicate layout '%s'", f.ID, l.ID)
		}
		ids.Add(l.ID)
	}

	check := func(source, id string) error {
		if !ids.Contains(id) {
			return fmt.Errorf("family '%s': %s references unknown layout '%s'", f.ID, source, id)
		}
		return nil
	}

	for _, id := range f.MinimalLayouts {
		if err := check("minimal layouts", id); err != nil {
			return err
		}
	}
	for domain, layoutIDs := range f.LayoutDomains {
		for _, id := range layoutIDs {
			if err := check("domain "+domain, id); err != nil {
				return err
			}
		}
	}
	for _, l := range f.Layouts {
		for _, id := range l.Requires {
			if err := check("requirement of "+l.ID, id); err != nil {
				return err
			}
		}
		for _, id := range l.Excludes {
			if err := check("exclusion of "+l.ID, id); err != nil {
				return err
			}
		}
	}
	return nil
}
