// Package export writes the family definitions as JSON. Offsets are written
// as 0x prefixed hex strings, sizes as integers and raw bytes as hex.
package export

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/hardware"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
)

// Schema identifies the document format.
const Schema = "transrom_families_v1"

// Document is the root of the exported JSON.
type Document struct {
	Meta     Meta              `json:"meta"`
	Families map[string]Family `json:"families"`
}

// Meta describes the value formats of the document.
type Meta struct {
	Schema       string `json:"schema"`
	OffsetFormat string `json:"offset_format"`
	SizeFormat   string `json:"size_format"`
}

// Family is the exported form of a family.
type Family struct {
	ID               string                     `json:"id"`
	Name             string                     `json:"name"`
	Extensions       []string                   `json:"extensions"`
	Notes            string                     `json:"notes,omitempty"`
	Hardware         hardware.FamilyHardware    `json:"hardware"`
	DefaultCartridge hardware.CartridgeHardware `json:"default_cartridge_hardware"`
	MinimalLayouts   []string                   `json:"minimal_layouts,omitempty"`
	LayoutDomains    map[string][]string        `json:"layout_domains,omitempty"`
	Layouts          map[string]Layout          `json:"layouts"`
}

// Layout is the exported form of a layout.
type Layout struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	AddressSpace    string              `json:"address_space"`
	Origin          region.Origin       `json:"origin"`
	Confidence      float64             `json:"confidence"`
	CanonicalOffset string              `json:"canonical_offset"`
	Tags            []region.Tag        `json:"tags"`
	Notes           string              `json:"notes,omitempty"`
	Provides        []string            `json:"provides,omitempty"`
	Requires        []string            `json:"requires,omitempty"`
	Excludes        []string            `json:"excludes,omitempty"`
	Replaces        []string            `json:"replaces,omitempty"`
	AppliesTo       map[string][]string `json:"applies_to,omitempty"`
	Regions         []Region            `json:"regions"`
}

// Region is the exported form of a region.
type Region struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	AddressSpace  string            `json:"address_space"`
	Kind          region.Kind       `json:"kind"`
	Origin        region.Origin     `json:"origin"`
	Confidence    float64           `json:"confidence"`
	Offset        string            `json:"offset"`
	Size          int               `json:"size"`
	Required      bool              `json:"required"`
	Tags          []region.Tag      `json:"tags"`
	Encoding      *region.Encoding  `json:"encoding"`
	ByteOrder     *region.ByteOrder `json:"byte_order"`
	Bank          *int              `json:"bank"`
	DefaultValues []DefaultValue    `json:"default_value_mapped"`
	Notes         string            `json:"notes,omitempty"`
}

// DefaultValue is the exported form of a mapped default value.
type DefaultValue struct {
	ID         string        `json:"id"`
	Raw        string        `json:"raw"`
	Meaning    string        `json:"meaning"`
	Origin     region.Origin `json:"origin"`
	Confidence float64       `json:"confidence"`
}

// Families writes the families as indented JSON.
func Families(w io.Writer, families []*family.Family) error {
	doc := NewDocument(families)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding families: %w", err)
	}
	return nil
}

// NewDocument converts the families to their exported form.
func NewDocument(families []*family.Family) Document {
	doc := Document{
		Meta: Meta{
			Schema:       Schema,
			OffsetFormat: "hex",
			SizeFormat:   "int",
		},
		Families: make(map[string]Family, len(families)),
	}
	for _, fam := range families {
		doc.Families[fam.ID] = convertFamily(fam)
	}
	return doc
}

func convertFamily(fam *family.Family) Family {
	f := Family{
		ID:               fam.ID,
		Name:             fam.Name,
		Extensions:       nonNil(fam.Extensions),
		Notes:            fam.Notes,
		Hardware:         fam.Hardware,
		DefaultCartridge: fam.DefaultCartridge,
		MinimalLayouts:   fam.MinimalLayouts,
		LayoutDomains:    fam.LayoutDomains,
		Layouts:          make(map[string]Layout, len(fam.Layouts)),
	}
	for _, l := range fam.Layouts {
		f.Layouts[l.ID] = convertLayout(l)
	}
	return f
}

func convertLayout(l *region.Layout) Layout {
	layout := Layout{
		ID:              l.ID,
		Name:            l.Name,
		AddressSpace:    l.AddressSpace,
		Origin:          l.Origin,
		Confidence:      l.Confidence,
		CanonicalOffset: Hex(l.CanonicalOffset),
		Tags:            nonNil(l.Tags),
		Notes:           l.Notes,
		Provides:        l.Provides,
		Requires:        l.Requires,
		Excludes:        l.Excludes,
		Replaces:        l.Replaces,
		AppliesTo:       l.AppliesTo,
		Regions:         make([]Region, 0, len(l.Regions)),
	}
	for _, r := range l.Regions {
		layout.Regions = append(layout.Regions, convertRegion(r))
	}
	return layout
}

func convertRegion(r region.Region) Region {
	reg := Region{
		ID:            r.ID,
		Name:          r.Name,
		AddressSpace:  r.AddressSpace,
		Kind:          r.Kind,
		Origin:        r.Origin,
		Confidence:    r.Confidence,
		Offset:        Hex(r.Offset),
		Size:          r.Size,
		Required:      r.Required,
		Tags:          nonNil(r.Tags),
		Bank:          r.Bank,
		DefaultValues: make([]DefaultValue, 0, len(r.DefaultValues)),
		Notes:         r.Notes,
	}
	if r.Encoding != region.EncodingNone {
		enc := r.Encoding
		reg.Encoding = &enc
	}
	if r.ByteOrder != region.ByteOrderNone {
		order := r.ByteOrder
		reg.ByteOrder = &order
	}
	for _, v := range r.DefaultValues {
		reg.DefaultValues = append(reg.DefaultValues, DefaultValue{
			ID:         v.ID,
			Raw:        "0x" + hex.EncodeToString(v.Raw),
			Meaning:    v.Meaning,
			Origin:     v.Origin,
			Confidence: v.Confidence,
		})
	}
	return reg
}

// Hex formats an offset as 0x prefixed lowercase hex.
func Hex(offset int) string {
	if offset < 0 {
		return fmt.Sprintf("-0x%x", -offset)
	}
	return fmt.Sprintf("0x%x", offset)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
