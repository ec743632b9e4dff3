package sg

import "github.com/SophiaFrassetto/TransROM-IA/internal/region"

// HeaderID is the id of the cartridge header layout.
const HeaderID = "sg.header.standard"

// Header region ids used by the header sanity checks.
const (
	RegionConsoleName = "sg.header.console_name"
	RegionChecksum    = "sg.header.checksum"
	RegionRegionCode  = "sg.header.region_code"
)

// Header is the cartridge header located at 0x100-0x1FF. It is not validated
// by the hardware but used by emulators, tools and region lock code.
var Header = &region.Layout{
	ID:              HeaderID,
	Name:            "Sega Genesis / Mega Drive Header",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x100,
	AddressSpace:    "sg.rom",
	Tags:            []region.Tag{region.TagStructural},
	Notes:           "Single fixed header layout for all standard cartridges.",
	Provides:        []string{"header", "identity"},
	Regions: []region.Region{
		withDefaults(
			text(RegionConsoleName, "Console Name", 0x100, 16, "Used by emulators for informal validation.",
				region.TagValidation, region.TagInformational),
			region.MappedDefaultValue{Raw: []byte("SEGA MEGA DRIVE "), Meaning: "Mega Drive", Origin: region.OriginObserved, Confidence: 0.95},
			region.MappedDefaultValue{Raw: []byte("SEGA GENESIS    "), Meaning: "Genesis", Origin: region.OriginObserved, Confidence: 0.95},
		),
		text("sg.header.copyright", "Copyright", 0x110, 16, "", region.TagInformational),
		text("sg.header.domestic_title", "Domestic Title", 0x120, 48, "", region.TagInformational),
		text("sg.header.overseas_title", "Overseas Title", 0x150, 48, "", region.TagInformational),
		text("sg.header.product_code", "Product Code", 0x180, 14, "Internal Sega identifier (GM XXXXX-XX).",
			region.TagStructural, region.TagInformational),
		text("sg.header.product_version", "Product Version", 0x18E, 2, "", region.TagInformational),
		data(RegionChecksum, "ROM Checksum", 0x190, 2, "Often incorrect even in official cartridges.",
			region.TagValidation),
		text("sg.header.io_support", "I/O Support", 0x192, 16, "Peripheral support hints (often unreliable).",
			region.TagInformational),
		withDefaults(
			data("sg.header.rom_start", "ROM Start Address", 0x1A0, 4, "", region.TagStructural),
			region.MappedDefaultValue{Raw: []byte{0, 0, 0, 0}, Meaning: "ROM base", Origin: region.OriginObserved, Confidence: 0.9},
		),
		data("sg.header.rom_end", "ROM End Address", 0x1A4, 4, "", region.TagStructural),
		data("sg.header.ram_start", "RAM Start Address", 0x1A8, 4, "", region.TagStructural),
		data("sg.header.ram_end", "RAM End Address", 0x1AC, 4, "", region.TagStructural),
		text("sg.header.backup_ram_id", "Backup RAM ID", 0x1B0, 12, "Indicates presence/type of battery-backed RAM.",
			region.TagStructural, region.TagInformational),
		data("sg.header.backup_ram_start", "Backup RAM Start", 0x1BC, 4, "", region.TagStructural),
		data("sg.header.backup_ram_end", "Backup RAM End", 0x1C0, 4, "", region.TagStructural),
		text("sg.header.modem_info", "Modem Info", 0x1C4, 12, "Used by Sega Meganet titles.",
			region.TagExperimental, region.TagInformational),
		withDefaults(
			text(RegionRegionCode, "Region Code", 0x1F0, 16, "", region.TagInformational),
			region.MappedDefaultValue{Raw: []byte("J"), Meaning: "Japan", Origin: region.OriginObserved, Confidence: 0.9},
			region.MappedDefaultValue{Raw: []byte("U"), Meaning: "USA", Origin: region.OriginObserved, Confidence: 0.9},
			region.MappedDefaultValue{Raw: []byte("E"), Meaning: "Europe", Origin: region.OriginObserved, Confidence: 0.9},
			region.MappedDefaultValue{Raw: []byte("JUE"), Meaning: "Multi-region", Origin: region.OriginObserved, Confidence: 0.95},
		),
	},
}

func text(id, name string, offset, size int, notes string, tags ...region.Tag) region.Region {
	r := data(id, name, offset, size, notes, tags...)
	r.Kind = region.KindText
	r.Encoding = region.EncodingASCII
	return r
}

func data(id, name string, offset, size int, notes string, tags ...region.Tag) region.Region {
	return region.Region{
		ID:           id,
		Name:         name,
		Kind:         region.KindData,
		Origin:       region.OriginSpec,
		ByteOrder:    region.ByteOrderBig,
		AddressSpace: "sg.rom",
		Offset:       offset,
		Size:         size,
		Required:     true,
		Confidence:   1.0,
		Tags:         tags,
		Notes:        notes,
	}
}

func withDefaults(r region.Region, values ...region.MappedDefaultValue) region.Region {
	r.DefaultValues = values
	return r
}
