// Package sg defines the Sega Genesis / Mega Drive family.
package sg

import (
	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/hardware"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
)

// Family is the Sega Genesis / Mega Drive family definition.
var Family = &family.Family{
	ID:         "sg",
	Name:       "Sega Genesis / Mega Drive",
	Extensions: []string{".bin", ".gen", ".md"},
	Hardware: hardware.FamilyHardware{
		CPU: hardware.CPUInfo{
			ID:            "m68000",
			Name:          "Motorola 68000",
			Bitness:       16,
			ByteOrder:     region.ByteOrderBig,
			SupportsThumb: hardware.Bool(false),
			SupportsModes: []string{},
			Notes:         "Main CPU used for game logic and execution.",
		},
		PointerModel: hardware.PointerModel{
			CommonWidths: []int{24},
		},
		MemoryModel: hardware.MemoryModel{
			AddressSpaceIDs: []string{"sg.rom", "sg.ram", "sg.vram"},
			Mirrored:        true,
		},
		BankingModel: hardware.BankingModel{
			Types: []string{},
		},
		CompressionSupport: hardware.CompressionSupport{
			Notes: "No standard hardware compression.",
		},
	},
	Layouts: []*region.Layout{
		Header,
		AddressMap,
		Vectors,
		VDPRegisters,
		Z80Map,
		SRAMMap,
	},
	MinimalLayouts: []string{VectorsID, AddressMapID},
	LayoutDomains: map[string][]string{
		family.DomainExecution: {VectorsID},
		family.DomainMemory:    {AddressMapID, SRAMMapID},
		family.DomainSystem:    {VDPRegistersID, Z80MapID},
		family.DomainHeader:    {HeaderID},
	},
}
