package detector

import (
	"encoding/binary"
	"slices"
	"testing"

	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/gba"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/snes"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
	"github.com/SophiaFrassetto/TransROM-IA/internal/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestResolve(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name      string
		extension string
		want      []string
	}{
		{name: "gba", extension: ".gba", want: []string{"gba"}},
		{name: "uppercase extension", extension: ".GBA", want: []string{"gba"}},
		{name: "extension without dot", extension: "sfc", want: []string{"snes"}},
		{name: "smc", extension: ".smc", want: []string{"snes"}},
		{name: "mega drive", extension: ".md", want: []string{"sg"}},
		{name: "unknown extension", extension: ".xyz", want: []string{}},
		{name: "no extension", extension: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			families := d.Resolve(&rom.Rom{Extension: tt.extension})
			assert.NotNil(t, families)
			assert.True(t, slices.Equal(tt.want, familyIDs(families)))
		})
	}
}

func TestResolveCustomRegistry(t *testing.T) {
	d := NewWithFamilies(log.NewTestLogger(t), []*family.Family{snes.Family})
	assert.Empty(t, d.Resolve(&rom.Rom{Extension: ".gba"}))
	assert.Len(t, d.Resolve(&rom.Rom{Extension: ".sfc"}), 1)
}

func TestResolveLayoutsSNES(t *testing.T) {
	d := New(log.NewTestLogger(t))

	tests := []struct {
		name    string
		size    int
		header  int
		mapMode byte
		want    []string
	}{
		{
			name:    "lorom",
			size:    0x10000,
			header:  0x7FC0,
			mapMode: 0x20,
			want: []string{snes.HeaderLoROMID, snes.VectorsLoROMID, snes.AddressMapLoROMID,
				snes.DMARegistersID, snes.PPURegistersID, snes.APURegistersID},
		},
		{
			name:    "hirom",
			size:    0x10000,
			header:  0xFFC0,
			mapMode: 0x21,
			want: []string{snes.HeaderHiROMID, snes.VectorsHiROMID, snes.AddressMapHiROMID,
				snes.DMARegistersID, snes.PPURegistersID, snes.APURegistersID},
		},
		{
			name:    "exhirom",
			size:    0x410000,
			header:  0x40FFC0,
			mapMode: 0x25,
			want: []string{snes.HeaderExHiROMID, snes.VectorsHiROMID, snes.AddressMapHiROMID,
				snes.DMARegistersID, snes.PPURegistersID, snes.APURegistersID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &rom.Rom{Extension: ".sfc", Data: buildSNESROM(tt.size, tt.header, tt.mapMode)}
			layouts := d.ResolveLayouts(r, snes.Family)
			assert.True(t, slices.Equal(tt.want, layoutIDs(layouts)), layoutIDs(layouts))
			assertNoConflicts(t, layouts)
		})
	}
}

func TestResolveLayoutsFallsBackToMinimal(t *testing.T) {
	d := New(log.NewTestLogger(t))
	r := &rom.Rom{Extension: ".sfc", Data: make([]byte, 0x100)}

	layouts := d.ResolveLayouts(r, snes.Family)
	assert.True(t, slices.Equal(snes.Family.MinimalLayouts, layoutIDs(layouts)))
}

func TestEnrich(t *testing.T) {
	d := New(log.NewTestLogger(t))
	r := &rom.Rom{Extension: ".gba", Data: make([]byte, 0x200)}

	families := d.Enrich(r)
	assert.Len(t, families, 1)
	assert.Equal(t, "gba", r.FamilyID)
	assert.True(t, slices.Contains(r.LayoutIDs, gba.HeaderID))
	assert.True(t, slices.Contains(r.LayoutIDs, gba.MultibootID))
	assert.NotEmpty(t, r.Regions)

	unknown := &rom.Rom{Extension: ".xyz", Data: []byte{1}}
	assert.Empty(t, d.Enrich(unknown))
	assert.Equal(t, "", unknown.FamilyID)
}

func assertNoConflicts(t *testing.T, layouts []*region.Layout) {
	t.Helper()
	for i, a := range layouts {
		for _, b := range layouts[i+1:] {
			assert.False(t, a.ConflictsWith(b), a.ID+" conflicts with "+b.ID)
		}
	}
}

func familyIDs(families []*family.Family) []string {
	ids := make([]string, 0, len(families))
	for _, f := range families {
		ids = append(ids, f.ID)
	}
	return ids
}

func layoutIDs(layouts []*region.Layout) []string {
	ids := make([]string, 0, len(layouts))
	for _, l := range layouts {
		ids = append(ids, l.ID)
	}
	return ids
}

// buildSNESROM creates an image with a valid header at the given offset.
func buildSNESROM(size, header int, mapMode byte) []byte {
	data := make([]byte, size)
	copy(data[header:], "DETECTOR TEST        ")
	data[header+0x15] = mapMode
	binary.LittleEndian.PutUint16(data[header+0x3C:], 0x8000)
	binary.LittleEndian.PutUint16(data[header+0x1C:], 0xFFFF)

	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	binary.LittleEndian.PutUint16(data[header+0x1C:], ^sum)
	binary.LittleEndian.PutUint16(data[header+0x1E:], sum)
	return data
}
