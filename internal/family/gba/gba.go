// Package gba defines the Game Boy Advance family. The GBA header has a fixed
// location at the start of the ROM.
package gba

import (
	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/hardware"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
)

// Family is the Game Boy Advance family definition.
var Family = &family.Family{
	ID:         "gba",
	Name:       "Game Boy Advance",
	Extensions: []string{".gba"},
	Hardware: hardware.FamilyHardware{
		CPU: hardware.CPUInfo{
			ID:            "arm7tdmi",
			Name:          "ARM7TDMI",
			Bitness:       32,
			ByteOrder:     region.ByteOrderLittle,
			SupportsThumb: hardware.Bool(true),
			SupportsModes: []string{"arm", "thumb"},
			Notes:         "ARM7TDMI CPU used in GBA, supports ARM and Thumb states",
		},
		PointerModel: hardware.PointerModel{
			CommonWidths:    []int{32},
			DefaultSchemaID: "gba.ptr.absolute32",
		},
		MemoryModel: hardware.MemoryModel{
			AddressSpaceIDs: []string{"gba.rom", "gba.wram", "gba.iram", "gba.vram", "gba.sram"},
		},
		BankingModel: hardware.BankingModel{
			Types: []string{},
			Notes: "GBA cartridges typically do not use bank switching",
		},
		CompressionSupport: hardware.CompressionSupport{
			Supported: true,
			CommonTypes: []hardware.CompressionType{
				hardware.CompressionLZ77,
				hardware.CompressionHuffman,
				hardware.CompressionRLE,
			},
			HardwareAssisted: true,
			Notes:            "BIOS provides decompression routines",
		},
	},
	Layouts: []*region.Layout{
		Header,
		Multiboot,
		AddressMap,
		Vectors,
		SaveMap,
	},
	MinimalLayouts: []string{HeaderID, VectorsID},
	LayoutDomains: map[string][]string{
		family.DomainHeader:    {HeaderID, MultibootID},
		family.DomainExecution: {VectorsID},
		family.DomainMemory:    {AddressMapID, SaveMapID},
	},
}
