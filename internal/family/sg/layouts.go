package sg

import "github.com/SophiaFrassetto/TransROM-IA/internal/region"

// Layout ids.
const (
	VectorsID      = "sg.vectors.standard"
	AddressMapID   = "sg.address_map.standard"
	VDPRegistersID = "sg.system.vdp_registers"
	Z80MapID       = "sg.system.z80_map"
	SRAMMapID      = "sg.cartridge.sram_map"
)

// Vectors is the Motorola 68000 vector table at the start of the ROM.
var Vectors = &region.Layout{
	ID:              VectorsID,
	Name:            "SG/MD CPU Vectors (68000)",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x000000,
	AddressSpace:    "sg.rom",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "Motorola 68000 vector table. The first two entries are loaded on reset.",
	Provides:        []string{"execution_vectors", "execution_entry"},
	Regions: []region.Region{
		vector("sg.vector.initial_stack_pointer", "Initial Stack Pointer", region.KindData, 0x000000, 4,
			"Loaded into A7 on reset.", region.TagExecution, region.TagValidation),
		vector("sg.vector.initial_program_counter", "Initial Program Counter", region.KindCode, 0x000004, 4,
			"Execution starts here after reset.", region.TagExecution, region.TagValidation),
		vector("sg.vector.exception_table", "Exception Vector Table", region.KindMapping, 0x000008, 0x3F8,
			"Remaining exception and interrupt vectors.", region.TagExecution, region.TagStructural),
	},
}

// AddressMap is the logical memory map of the main CPU.
var AddressMap = &region.Layout{
	ID:              AddressMapID,
	Name:            "SG/MD Address Map",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x000000,
	AddressSpace:    "sg.cpu",
	Tags:            []region.Tag{region.TagStructural},
	Notes:           "Logical memory map of the Mega Drive.",
	Provides:        []string{"address_map", "cpu_memory_view"},
	Regions: []region.Region{
		cpuMapping("sg.map.rom", "Cartridge ROM", region.OriginSpec, 0x000000, 0x400000, true, region.TagStructural),
		cpuMapping("sg.map.ram", "Main Work RAM", region.OriginSpec, 0xFF0000, 0x010000, true, region.TagStructural),
	},
}

// VDPRegisters describes the memory mapped video display processor ports.
var VDPRegisters = &region.Layout{
	ID:              VDPRegistersID,
	Name:            "SG/MD VDP Registers",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0xC00000,
	AddressSpace:    "sg.cpu",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "Video Display Processor memory-mapped registers.",
	Provides:        []string{"video_system", "vdp_registers"},
	Requires:        []string{AddressMapID},
	Regions: []region.Region{
		cpuMapping("sg.vdp.data_port", "VDP Data Port", region.OriginSpec, 0xC00000, 2, true, region.TagExecution),
		cpuMapping("sg.vdp.control_port", "VDP Control Port", region.OriginSpec, 0xC00004, 2, true, region.TagExecution),
	},
}

// Z80Map describes the Z80 RAM and bus control registers.
var Z80Map = &region.Layout{
	ID:              Z80MapID,
	Name:            "SG/MD Z80 Subsystem Map",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0xA00000,
	AddressSpace:    "sg.cpu",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "Z80 RAM and bus control registers.",
	Regions: []region.Region{
		cpuMapping("sg.z80.ram", "Z80 RAM", region.OriginSpec, 0xA00000, 0x2000, true, region.TagExecution),
		cpuMapping("sg.z80.bus_request", "Z80 Bus Request", region.OriginSpec, 0xA11100, 2, true, region.TagExecution),
		cpuMapping("sg.z80.reset", "Z80 Reset", region.OriginSpec, 0xA11200, 2, true, region.TagExecution),
	},
}

// SRAMMap is the address window commonly used for battery-backed SRAM.
var SRAMMap = &region.Layout{
	ID:              SRAMMapID,
	Name:            "SG/MD Cartridge SRAM Window",
	Origin:          region.OriginObserved,
	Confidence:      0.9,
	CanonicalOffset: 0x000000,
	AddressSpace:    "sg.cpu",
	Tags:            []region.Tag{region.TagStructural, region.TagOptional},
	Notes:           "Commonly used address window for battery-backed SRAM.",
	Regions: []region.Region{
		cpuMapping("sg.sram.window", "SRAM Window", region.OriginObserved, 0x200000, 0x010000, false,
			region.TagStructural, region.TagOptional),
	},
}

func vector(id, name string, kind region.Kind, offset, size int, notes string, tags ...region.Tag) region.Region {
	return region.Region{
		ID:           id,
		Name:         name,
		Kind:         kind,
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

func cpuMapping(id, name string, origin region.Origin, offset, size int, required bool, tags ...region.Tag) region.Region {
	return region.Region{
		ID:           id,
		Name:         name,
		Kind:         region.KindMapping,
		Origin:       origin,
		AddressSpace: "sg.cpu",
		Offset:       offset,
		Size:         size,
		Required:     required,
		Confidence:   1.0,
		Tags:         tags,
	}
}
