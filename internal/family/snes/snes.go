// Package snes defines the Super Nintendo Entertainment System family.
//
// The SNES internal header has no fixed file location, it depends on the
// cartridge mapping type:
//   - LoROM   0x7FC0
//   - HiROM   0xFFC0
//   - ExHiROM 0x40FFC0
package snes

import (
	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/hardware"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
)

// FactMapper is the applies-to key that selects layouts by mapping type.
const FactMapper = "mapper"

// Mapping types.
const (
	MapperLoROM   = "lorom"
	MapperHiROM   = "hirom"
	MapperExHiROM = "exhirom"
)

// Family is the SNES family definition.
var Family = &family.Family{
	ID:         "snes",
	Name:       "Super Nintendo Entertainment System",
	Extensions: []string{".sfc", ".smc"},
	Hardware: hardware.FamilyHardware{
		CPU: hardware.CPUInfo{
			ID:            "65c816",
			Name:          "Ricoh 5A22 (65C816)",
			Bitness:       16,
			ByteOrder:     region.ByteOrderLittle,
			SupportsModes: []string{"native", "emulation"},
			Notes:         "65C816-compatible CPU with banked addressing.",
		},
		PointerModel: hardware.PointerModel{
			CommonWidths:      []int{16, 24},
			RelativeSupported: true,
			Banked:            true,
			DefaultSchemaID:   "snes.ptr.banked",
		},
		MemoryModel: hardware.MemoryModel{
			AddressSpaceIDs: []string{"snes.rom", "snes.wram", "snes.vram", "snes.sram"},
			Mirrored:        true,
			Banked:          true,
		},
		BankingModel: hardware.BankingModel{
			Supported: true,
			Types:     []string{"LoROM", "HiROM"},
			BankSize:  0x8000,
			Notes:     "Bank size and decoding depend on mapping type.",
		},
		CompressionSupport: hardware.CompressionSupport{
			Supported:        true,
			CommonTypes:      []hardware.CompressionType{hardware.CompressionCustom, hardware.CompressionSDD1},
			HardwareAssisted: true,
			Notes:            "Some cartridges include hardware-assisted decompression.",
		},
	},
	DefaultCartridge: hardware.CartridgeHardware{
		ExtraCPU:     true,
		Coprocessors: []string{"SuperFX", "SA-1", "DSP", "S-DD1"},
	},
	Layouts: []*region.Layout{
		HeaderLoROM,
		HeaderHiROM,
		HeaderExHiROM,
		VectorsLoROM,
		VectorsHiROM,
		AddressMapLoROM,
		AddressMapHiROM,
		DMARegisters,
		PPURegisters,
		APURegisters,
	},
	MinimalLayouts: []string{HeaderLoROMID, VectorsLoROMID, AddressMapLoROMID},
	LayoutDomains: map[string][]string{
		family.DomainHeader:    {HeaderLoROMID, HeaderHiROMID, HeaderExHiROMID},
		family.DomainExecution: {VectorsLoROMID, VectorsHiROMID},
		family.DomainMemory:    {AddressMapLoROMID, AddressMapHiROMID},
		family.DomainSystem:    {PPURegistersID, APURegistersID, DMARegistersID},
	},
}
