package gba

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFamilyValidate(t *testing.T) {
	assert.NoError(t, Family.Validate())
}

func TestHeaderCoversFirst192Bytes(t *testing.T) {
	next := 0
	for _, r := range Header.Regions {
		assert.Equal(t, next, r.Offset, r.ID)
		next = r.End()
	}
	assert.Equal(t, 0xC0, next)
	assert.Equal(t, Multiboot.CanonicalOffset, next)
}

func TestMultibootIsOptional(t *testing.T) {
	assert.Empty(t, Multiboot.RequiredRegions())
}
