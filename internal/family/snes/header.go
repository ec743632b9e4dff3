package snes

import "github.com/SophiaFrassetto/TransROM-IA/internal/region"

// Header layout ids.
const (
	HeaderLoROMID   = "snes.header.lorom"
	HeaderHiROMID   = "snes.header.hirom"
	HeaderExHiROMID = "snes.header.exhirom"
)

// Header region ids, shared by all header layouts.
const (
	RegionGameTitle          = "snes.header.game_title"
	RegionMapMode            = "snes.header.map_mode"
	RegionROMType            = "snes.header.rom_type"
	RegionROMSize            = "snes.header.rom_size"
	RegionSRAMSize           = "snes.header.sram_size"
	RegionCountry            = "snes.header.country"
	RegionLicensee           = "snes.header.licensee"
	RegionVersion            = "snes.header.version"
	RegionChecksumComplement = "snes.header.checksum_complement"
	RegionChecksum           = "snes.header.checksum"
)

// Header file offset deltas of the HiROM and ExHiROM headers relative to
// the LoROM header.
const (
	HiROMDelta   = 0x8000
	ExHiROMDelta = 0x408000
)

// HeaderLoROM is the 32 byte internal ROM header of LoROM cartridges.
// The header is identical for all mapping types, only its location differs.
var HeaderLoROM = &region.Layout{
	ID:              HeaderLoROMID,
	Name:            "SNES Internal Header (LoROM)",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x7FC0,
	AddressSpace:    "snes.rom",
	Tags:            []region.Tag{region.TagStructural},
	Notes:           "Canonical LoROM header layout.",
	Provides:        []string{"header", "identity", "mapper:lorom"},
	Requires:        []string{VectorsLoROMID, AddressMapLoROMID},
	Excludes:        []string{HeaderHiROMID, HeaderExHiROMID},
	AppliesTo:       map[string][]string{"mapper": {MapperLoROM}},
	Regions: []region.Region{
		{
			ID:           RegionGameTitle,
			Name:         "Game Title",
			Kind:         region.KindText,
			Origin:       region.OriginSpec,
			Encoding:     region.EncodingASCII,
			AddressSpace: "snes.rom",
			Offset:       0x7FC0,
			Size:         21,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagInformational},
			Notes:        "Uppercase ASCII title padded with spaces. Not required by hardware.",
		},
		{
			ID:           RegionMapMode,
			Name:         "Map Mode",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			AddressSpace: "snes.rom",
			Offset:       0x7FD5,
			Size:         1,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagStructural, region.TagValidation},
			DefaultValues: []region.MappedDefaultValue{
				{Raw: []byte{0x20}, Meaning: "Slow LoROM", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x30}, Meaning: "Fast LoROM", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x21}, Meaning: "Slow HiROM", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x31}, Meaning: "Fast HiROM", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x25}, Meaning: "ExHiROM (observed)", Origin: region.OriginObserved, Confidence: 0.9},
			},
			Notes: "Bit 4 is the FastROM flag, the lower bits select the mapping type.",
		},
		{
			ID:           RegionROMType,
			Name:         "ROM Type",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			AddressSpace: "snes.rom",
			Offset:       0x7FD6,
			Size:         1,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagStructural, region.TagInformational},
			DefaultValues: []region.MappedDefaultValue{
				{Raw: []byte{0x00}, Meaning: "ROM only", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x01}, Meaning: "ROM + RAM", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x02}, Meaning: "ROM + RAM + Battery", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x03}, Meaning: "SuperFX", Origin: region.OriginObserved, Confidence: 0.95},
				{Raw: []byte{0x05}, Meaning: "SA-1", Origin: region.OriginObserved, Confidence: 0.95},
				{Raw: []byte{0x0A}, Meaning: "S-DD1", Origin: region.OriginObserved, Confidence: 0.9},
			},
		},
		{
			ID:           RegionROMSize,
			Name:         "ROM Size",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			AddressSpace: "snes.rom",
			Offset:       0x7FD7,
			Size:         1,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagStructural, region.TagInformational},
			Notes:        "Value N encodes 2^(N+10) bytes. The file size is authoritative.",
		},
		{
			ID:           RegionSRAMSize,
			Name:         "SRAM Size",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			AddressSpace: "snes.rom",
			Offset:       0x7FD8,
			Size:         1,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagStructural, region.TagInformational},
			Notes:        "0 indicates no SRAM.",
		},
		{
			ID:           RegionCountry,
			Name:         "Country Code",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			AddressSpace: "snes.rom",
			Offset:       0x7FD9,
			Size:         1,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagInformational},
			DefaultValues: []region.MappedDefaultValue{
				{Raw: []byte{0x00}, Meaning: "Japan", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x01}, Meaning: "USA", Origin: region.OriginSpec, Confidence: 1.0},
				{Raw: []byte{0x02}, Meaning: "Europe", Origin: region.OriginSpec, Confidence: 1.0},
			},
		},
		{
			ID:           RegionLicensee,
			Name:         "Licensee Code",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			AddressSpace: "snes.rom",
			Offset:       0x7FDA,
			Size:         1,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagInformational, region.TagExperimental},
		},
		{
			ID:           RegionVersion,
			Name:         "ROM Version",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			AddressSpace: "snes.rom",
			Offset:       0x7FDB,
			Size:         1,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagInformational},
			DefaultValues: []region.MappedDefaultValue{
				{Raw: []byte{0x00}, Meaning: "Initial version", Origin: region.OriginSpec, Confidence: 1.0},
			},
		},
		{
			ID:           RegionChecksumComplement,
			Name:         "Checksum Complement",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			ByteOrder:    region.ByteOrderLittle,
			AddressSpace: "snes.rom",
			Offset:       0x7FDC,
			Size:         2,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagValidation},
			Notes:        "Bitwise complement of the checksum.",
		},
		{
			ID:           RegionChecksum,
			Name:         "Checksum",
			Kind:         region.KindData,
			Origin:       region.OriginSpec,
			ByteOrder:    region.ByteOrderLittle,
			AddressSpace: "snes.rom",
			Offset:       0x7FDE,
			Size:         2,
			Required:     true,
			Confidence:   1.0,
			Tags:         []region.Tag{region.TagValidation},
			Notes:        "16 bit sum of all ROM bytes.",
		},
	},
}

// HeaderHiROM is the LoROM header projected to the HiROM location.
var HeaderHiROM = derive(HeaderLoROM, HeaderHiROMID, "SNES Internal Header (HiROM)", HiROMDelta,
	func(l *region.Layout) {
		l.Notes = "Canonical HiROM header layout."
		l.Provides = []string{"header", "identity", "cartridge_metadata", "mapper:hirom"}
		l.Requires = []string{VectorsHiROMID, AddressMapHiROMID}
		l.Excludes = []string{HeaderLoROMID, HeaderExHiROMID}
		l.AppliesTo = map[string][]string{"mapper": {MapperHiROM}}
	})

// HeaderExHiROM is the LoROM header projected to the ExHiROM location used
// by very large cartridges.
var HeaderExHiROM = derive(HeaderLoROM, HeaderExHiROMID, "SNES Internal Header (ExHiROM)", ExHiROMDelta,
	func(l *region.Layout) {
		l.Origin = region.OriginObserved
		l.Confidence = 0.9
		l.Tags = []region.Tag{region.TagStructural, region.TagExperimental}
		l.Notes = "Extended HiROM header for very large cartridges."
		l.Provides = []string{"header", "identity", "mapper:exhirom"}
		l.Requires = []string{VectorsHiROMID, AddressMapHiROMID}
		l.Excludes = []string{HeaderLoROMID, HeaderHiROMID}
		l.AppliesTo = map[string][]string{"mapper": {MapperExHiROM}}
	})

// derive projects a layout by an offset delta and lets the caller set the
// relation metadata of the new layout.
func derive(source *region.Layout, id, name string, delta int, configure func(*region.Layout)) *region.Layout {
	l := source.WithOffsetDelta(id, name, delta)
	configure(l)
	return l
}
