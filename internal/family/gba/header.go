package gba

import (
	"bytes"

	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
)

// Layout ids.
const (
	HeaderID     = "gba.header.standard"
	MultibootID  = "gba.header.multiboot"
	AddressMapID = "gba.address_map.standard"
	VectorsID    = "gba.vectors.standard"
	SaveMapID    = "gba.cartridge.save_map"
)

// Header region ids used by the header sanity checks.
const (
	RegionEntryPoint      = "gba.header.entry_point"
	RegionNintendoLogo    = "gba.header.nintendo_logo"
	RegionGameTitle       = "gba.header.game_title"
	RegionGameCode        = "gba.header.game_code"
	RegionMakerCode       = "gba.header.maker_code"
	RegionFixedValue      = "gba.header.fixed_value"
	RegionComplementCheck = "gba.header.complement_check"
)

const (
	// HeaderSize is the size of the standard header without multiboot data.
	HeaderSize = 0xC0
	// FixedValue is the value every valid header contains at 0xB2.
	FixedValue = 0x96
)

// Header is the cartridge header at the start of every GBA ROM. The complement
// check covers the bytes 0xA0-0xBC and is verified by the BIOS.
var Header = &region.Layout{
	ID:              HeaderID,
	Name:            "GBA Cartridge Header",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x000,
	AddressSpace:    "gba.rom",
	Tags:            []region.Tag{region.TagStructural, region.TagValidation},
	Notes:           "Fixed 192 byte header, required for all commercial cartridges.",
	Provides:        []string{"header", "identity"},
	Regions: []region.Region{
		romRegion(RegionEntryPoint, "ROM Entry Point", region.KindCode, 0x00, 4,
			"32 bit ARM branch opcode to the start address.", region.TagExecution, region.TagValidation),
		romRegion(RegionNintendoLogo, "Nintendo Logo", region.KindGraphics, 0x04, 156,
			"Compressed bitmap checked by the BIOS.", region.TagValidation, region.TagGraphics),
		textRegion(RegionGameTitle, "Game Title", 0xA0, 12, "Uppercase ASCII padded with zero bytes."),
		textRegion(RegionGameCode, "Game Code", 0xAC, 4, "UTTD code, last character is the destination."),
		textRegion(RegionMakerCode, "Maker Code", 0xB0, 2, "Licensee code, 01 is Nintendo."),
		withDefaults(
			romRegion(RegionFixedValue, "Fixed Value", region.KindData, 0xB2, 1, "Must be 96h.", region.TagValidation),
			region.MappedDefaultValue{Raw: []byte{FixedValue}, Meaning: "Valid header", Origin: region.OriginSpec, Confidence: 1.0},
		),
		withDefaults(
			romRegion("gba.header.main_unit_code", "Main Unit Code", region.KindData, 0xB3, 1, "", region.TagInformational),
			region.MappedDefaultValue{Raw: []byte{0x00}, Meaning: "GBA", Origin: region.OriginSpec, Confidence: 1.0},
		),
		romRegion("gba.header.device_type", "Device Type", region.KindData, 0xB4, 1,
			"Normally 00h, bit 7 selects the debugging handler.", region.TagInformational),
		withDefaults(
			romRegion("gba.header.reserved_1", "Reserved Area", region.KindReserved, 0xB5, 7, "", region.TagStructural),
			region.MappedDefaultValue{Raw: make([]byte, 7), Meaning: "Zero-filled", Origin: region.OriginSpec, Confidence: 1.0},
		),
		romRegion("gba.header.software_version", "Software Version", region.KindData, 0xBC, 1, "", region.TagInformational),
		romRegion(RegionComplementCheck, "Complement Check", region.KindData, 0xBD, 1,
			"-(sum of A0h-BCh + 19h) & FFh.", region.TagValidation),
		withDefaults(
			romRegion("gba.header.reserved_2", "Reserved Area", region.KindReserved, 0xBE, 2, "", region.TagStructural),
			region.MappedDefaultValue{Raw: make([]byte, 2), Meaning: "Zero-filled", Origin: region.OriginSpec, Confidence: 1.0},
		),
	},
}

// Multiboot is the optional extension used for Normal, Multiplay and Joybus
// boot modes.
var Multiboot = &region.Layout{
	ID:              MultibootID,
	Name:            "GBA Multiboot Extension",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x0C0,
	AddressSpace:    "gba.rom",
	Tags:            []region.Tag{region.TagOptional, region.TagExecution},
	Notes:           "Optional multiboot extension for Normal, Multiplay and Joybus modes.",
	Requires:        []string{HeaderID},
	Regions: []region.Region{
		optional(romRegion("gba.header.multiboot.ram_entry_point", "RAM Entry Point", region.KindCode, 0xC0, 4, "",
			region.TagExecution, region.TagOptional)),
		optional(withDefaults(
			romRegion("gba.header.multiboot.boot_mode", "Boot Mode", region.KindData, 0xC4, 1, "",
				region.TagExecution, region.TagOptional),
			mapped("gba.header.multiboot.boot_mode.init_zero", []byte{0x00}, "Init as 00h - BIOS overwrites this value"),
			mapped("gba.header.multiboot.boot_mode.joybus", []byte{0x01}, "01h: Joybus mode"),
			mapped("gba.header.multiboot.boot_mode.normal", []byte{0x02}, "02h: Normal mode"),
			mapped("gba.header.multiboot.boot_mode.multiplay", []byte{0x03}, "03h: Multiplay mode"),
		)),
		optional(withDefaults(
			romRegion("gba.header.multiboot.slave_id_number", "Slave ID Number", region.KindData, 0xC5, 1, "",
				region.TagExecution, region.TagOptional),
			mapped("gba.header.multiboot.slave_id_number.init_zero", []byte{0x00}, "Init as 00h - BIOS overwrites this value"),
			mapped("gba.header.multiboot.slave_id_number.slave_1", []byte{0x01}, "01h: Slave #1"),
			mapped("gba.header.multiboot.slave_id_number.slave_2", []byte{0x02}, "02h: Slave #2"),
			mapped("gba.header.multiboot.slave_id_number.slave_3", []byte{0x03}, "03h: Slave #3"),
		)),
		optional(withDefaults(
			romRegion("gba.header.multiboot.not_used", "Not used", region.KindReserved, 0xC6, 26, "",
				region.TagStructural, region.TagDeprecated),
			mapped("gba.header.multiboot.not_used.zero_filled", bytes.Repeat([]byte{0x00}, 26), "Should be zero-filled"),
		)),
		optional(romRegion("gba.header.multiboot.joybus_entry_point", "JOYBUS Entry Point", region.KindCode, 0xE0, 4, "",
			region.TagExecution, region.TagOptional)),
	},
}

func romRegion(id, name string, kind region.Kind, offset, size int, notes string, tags ...region.Tag) region.Region {
	return region.Region{
		ID:           id,
		Name:         name,
		Kind:         kind,
		Origin:       region.OriginSpec,
		ByteOrder:    region.ByteOrderLittle,
		AddressSpace: "gba.rom",
		Offset:       offset,
		Size:         size,
		Required:     true,
		Confidence:   1.0,
		Tags:         tags,
		Notes:        notes,
	}
}

func textRegion(id, name string, offset, size int, notes string) region.Region {
	r := romRegion(id, name, region.KindText, offset, size, notes, region.TagInformational)
	r.Encoding = region.EncodingASCII
	return r
}

func optional(r region.Region) region.Region {
	r.Required = false
	return r
}

func withDefaults(r region.Region, values ...region.MappedDefaultValue) region.Region {
	r.DefaultValues = values
	return r
}

func mapped(id string, raw []byte, meaning string) region.MappedDefaultValue {
	return region.MappedDefaultValue{ID: id, Raw: raw, Meaning: meaning, Origin: region.OriginSpec, Confidence: 1.0}
}
