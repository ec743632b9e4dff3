package snes

import "github.com/SophiaFrassetto/TransROM-IA/internal/region"

// Address map and system layout ids.
const (
	AddressMapLoROMID = "snes.address_map.lorom"
	AddressMapHiROMID = "snes.address_map.hirom"
	DMARegistersID    = "snes.system.dma_registers"
	PPURegistersID    = "snes.system.ppu_registers"
	APURegistersID    = "snes.system.apu_registers"
)

// AddressMapLoROM is the logical CPU memory map of LoROM cartridges.
var AddressMapLoROM = &region.Layout{
	ID:              AddressMapLoROMID,
	Name:            "SNES Address Map (LoROM)",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x000000,
	AddressSpace:    "snes.cpu",
	Tags:            []region.Tag{region.TagStructural},
	Notes:           "Logical memory map for LoROM cartridges.",
	Provides:        []string{"address_map"},
	Requires:        []string{HeaderLoROMID},
	Excludes:        []string{AddressMapHiROMID},
	AppliesTo:       map[string][]string{"mapper": {MapperLoROM}},
	Regions: []region.Region{
		cpuMapping("snes.map.lorom.rom_low", "ROM (banks 00-3F)", 0x008000, 0x8000),
		cpuMapping("snes.map.lorom.wram", "Work RAM", 0x7E0000, 0x020000),
	},
}

// AddressMapHiROM is the logical CPU memory map of HiROM cartridges.
var AddressMapHiROM = &region.Layout{
	ID:              AddressMapHiROMID,
	Name:            "SNES Address Map (HiROM)",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x000000,
	AddressSpace:    "snes.cpu",
	Tags:            []region.Tag{region.TagStructural},
	Notes:           "Logical memory map for HiROM cartridges.",
	Provides:        []string{"address_map"},
	Excludes:        []string{AddressMapLoROMID},
	AppliesTo:       map[string][]string{"mapper": {MapperHiROM, MapperExHiROM}},
	Regions: []region.Region{
		cpuMapping("snes.map.hirom.rom", "ROM (banks C0-FF)", 0xC00000, 0x400000),
		cpuMapping("snes.map.hirom.wram", "Work RAM", 0x7E0000, 0x020000),
	},
}

// DMARegisters describes the DMA and HDMA channel registers. The
// requirement on both address maps is met by whichever of them applies.
var DMARegisters = &region.Layout{
	ID:              DMARegistersID,
	Name:            "SNES DMA / HDMA Registers",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x4300,
	AddressSpace:    "snes.cpu",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "DMA and HDMA channel registers.",
	Provides:        []string{"dma_system"},
	Requires:        []string{AddressMapLoROMID, AddressMapHiROMID},
	Regions: []region.Region{
		cpuMapping("snes.dma.channel0", "DMA Channel 0 Registers", 0x4300, 0x10),
	},
}

// PPURegisters describes the picture processing unit registers.
var PPURegisters = &region.Layout{
	ID:              PPURegistersID,
	Name:            "SNES PPU Registers",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x2100,
	AddressSpace:    "snes.cpu",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "Picture Processing Unit registers.",
	Regions: []region.Region{
		cpuMapping("snes.ppu.registers", "PPU Registers", 0x2100, 0x40),
	},
}

// APURegisters describes the audio processing unit I/O ports.
var APURegisters = &region.Layout{
	ID:              APURegistersID,
	Name:            "SNES APU Registers",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x2140,
	AddressSpace:    "snes.cpu",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "Audio Processing Unit I/O registers.",
	Regions: []region.Region{
		cpuMapping("snes.apu.io", "APU I/O Registers", 0x2140, 0x04),
	},
}

func cpuMapping(id, name string, offset, size int) region.Region {
	return region.Region{
		ID:           id,
		Name:         name,
		Kind:         region.KindMapping,
		Origin:       region.OriginSpec,
		AddressSpace: "snes.cpu",
		Offset:       offset,
		Size:         size,
		Required:     true,
		Confidence:   1.0,
	}
}
