package gba

import "github.com/SophiaFrassetto/TransROM-IA/internal/region"

// AddressMap is the fixed memory map of the GBA CPU.
var AddressMap = &region.Layout{
	ID:              AddressMapID,
	Name:            "GBA Address Map",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x00000000,
	AddressSpace:    "gba.cpu",
	Tags:            []region.Tag{region.TagStructural},
	Notes:           "Fixed memory map of the Game Boy Advance CPU.",
	Provides:        []string{"address_map", "cpu_memory_view"},
	Regions: []region.Region{
		cpuMapping("gba.map.rom", "Game Pak ROM", region.OriginSpec, 0x08000000, 0x02000000, true, "Up to 32MB of ROM space."),
		cpuMapping("gba.map.wram_board", "External WRAM", region.OriginSpec, 0x02000000, 0x00040000, true, "256KB external work RAM."),
		cpuMapping("gba.map.wram_chip", "Internal WRAM", region.OriginSpec, 0x03000000, 0x00008000, true, "32KB internal work RAM."),
		cpuMapping("gba.map.vram", "Video RAM", region.OriginSpec, 0x06000000, 0x00018000, true, ""),
		cpuMapping("gba.map.oam", "Object Attribute Memory", region.OriginSpec, 0x07000000, 0x00000400, true, ""),
		cpuMapping("gba.map.palette", "Palette RAM", region.OriginSpec, 0x05000000, 0x00000400, true, ""),
	},
}

// Vectors contains the ARM exception vectors. Only the reset vector is
// strictly required for execution.
var Vectors = &region.Layout{
	ID:              VectorsID,
	Name:            "GBA ARM Exception Vectors",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x00000000,
	AddressSpace:    "gba.rom",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "ARM exception vectors at the start of the ROM.",
	Provides:        []string{"execution_vectors", "execution_entry"},
	Regions: []region.Region{
		vector("gba.vector.reset", "Reset Vector", region.KindCode, 0x00, region.TagExecution, region.TagValidation),
		vector("gba.vector.undefined_instruction", "Undefined Instruction Vector", region.KindCode, 0x04, region.TagExecution),
		vector("gba.vector.software_interrupt", "Software Interrupt (SWI) Vector", region.KindCode, 0x08, region.TagExecution),
		vector("gba.vector.prefetch_abort", "Prefetch Abort Vector", region.KindCode, 0x0C, region.TagExecution),
		vector("gba.vector.data_abort", "Data Abort Vector", region.KindCode, 0x10, region.TagExecution),
		vector("gba.vector.reserved", "Reserved Vector", region.KindReserved, 0x14, region.TagStructural),
		vector("gba.vector.irq", "IRQ Vector", region.KindCode, 0x18, region.TagExecution),
		vector("gba.vector.fiq", "FIQ Vector", region.KindCode, 0x1C, region.TagExecution),
	},
}

// SaveMap lists the save memory windows used by commercial cartridges.
var SaveMap = &region.Layout{
	ID:              SaveMapID,
	Name:            "GBA Save Memory Address Windows",
	Origin:          region.OriginObserved,
	Confidence:      0.9,
	CanonicalOffset: 0x00000000,
	AddressSpace:    "gba.cpu",
	Tags:            []region.Tag{region.TagStructural},
	Notes:           "Standardized save memory windows used by commercial cartridges.",
	Regions: []region.Region{
		cpuMapping("gba.save.sram", "SRAM Save Area", region.OriginObserved, 0x0E000000, 0x00010000, false,
			"64KB SRAM window (used by SRAM and FLASH emulation)."),
		cpuMapping("gba.save.eeprom", "EEPROM Save Interface", region.OriginObserved, 0x0D000000, 0x00002000, false,
			"EEPROM interface (addressed via serial protocol)."),
	},
}

func vector(id, name string, kind region.Kind, offset int, tags ...region.Tag) region.Region {
	return romRegion(id, name, kind, offset, 4, "", tags...)
}

func cpuMapping(id, name string, origin region.Origin, offset, size int, required bool, notes string) region.Region {
	r := region.Region{
		ID:           id,
		Name:         name,
		Kind:         region.KindMapping,
		Origin:       origin,
		AddressSpace: "gba.cpu",
		Offset:       offset,
		Size:         size,
		Required:     required,
		Confidence:   1.0,
		Tags:         []region.Tag{region.TagStructural},
		Notes:        notes,
	}
	if !required {
		r.Tags = append(r.Tags, region.TagOptional)
	}
	return r
}
