package region

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func testLayout() *Layout {
	return &Layout{
		ID:              "test.header.lorom",
		Name:            "Header",
		Origin:          OriginSpec,
		Confidence:      1.0,
		CanonicalOffset: 0x7FC0,
		AddressSpace:    "test.rom",
		Regions: []Region{
			{ID: "test.header.title", Offset: 0x7FC0, Size: 21, Required: true, Tags: []Tag{TagInformational}},
			{ID: "test.header.map_mode", Offset: 0x7FD5, Size: 1, Required: true},
			{ID: "test.header.notes", Offset: 0x7FD6, Size: 1},
		},
		Excludes:  []string{"test.header.hirom"},
		AppliesTo: map[string][]string{"mapper": {"lorom"}},
	}
}

func TestLayoutWithOffsetDelta(t *testing.T) {
	source := testLayout()
	derived := source.WithOffsetDelta("test.header.hirom", "Header HiROM", 0x8000)

	assert.Equal(t, "test.header.hirom", derived.ID)
	assert.Equal(t, 0xFFC0, derived.CanonicalOffset)
	assert.Len(t, derived.Regions, len(source.Regions))
	for i, r := range derived.Regions {
		assert.Equal(t, source.Regions[i].Offset+0x8000, r.Offset)
		assert.Equal(t, source.Regions[i].ID, r.ID)
	}
	assert.Nil(t, derived.AppliesTo)
	assert.Equal(t, 0x7FC0, source.Regions[0].Offset)
}

func TestLayoutApplies(t *testing.T) {
	l := testLayout()

	assert.True(t, l.Applies(map[string]string{"mapper": "lorom"}))
	assert.False(t, l.Applies(map[string]string{"mapper": "hirom"}))
	assert.False(t, l.Applies(nil))

	unconstrained := &Layout{ID: "free"}
	assert.True(t, unconstrained.Applies(nil))

	multi := &Layout{ID: "multi", AppliesTo: map[string][]string{"mapper": {"hirom", "exhirom"}}}
	assert.True(t, multi.Applies(map[string]string{"mapper": "exhirom"}))
}

func TestLayoutConflictsWith(t *testing.T) {
	lo := testLayout()
	hi := &Layout{ID: "test.header.hirom"}
	other := &Layout{ID: "test.vectors"}

	assert.True(t, lo.ConflictsWith(hi))
	assert.True(t, hi.ConflictsWith(lo))
	assert.False(t, lo.ConflictsWith(other))
}

func TestLayoutRegionLookup(t *testing.T) {
	l := testLayout()

	r, ok := l.Region("test.header.map_mode")
	assert.True(t, ok)
	assert.Equal(t, 0x7FD5, r.Offset)

	_, ok = l.Region("missing")
	assert.False(t, ok)

	assert.Len(t, l.RequiredRegions(), 2)
}

func TestLayoutValidate(t *testing.T) {
	l := testLayout()
	assert.NoError(t, l.Validate())

	l.Regions = append(l.Regions, Region{ID: "test.header.title", Size: 1})
	assert.ErrorContains(t, l.Validate(), "duplicate region")

	self := &Layout{ID: "self", Excludes: []string{"self"}}
	assert.ErrorContains(t, self.Validate(), "excludes itself")
}
