package snes

import "github.com/SophiaFrassetto/TransROM-IA/internal/region"

// Vector layout ids.
const (
	VectorsLoROMID = "snes.vectors.lorom"
	VectorsHiROMID = "snes.vectors.hirom"
)

// Vector region ids, shared by the LoROM and HiROM vector layouts.
const (
	RegionEmulationReset = "snes.vector.emu.reset"
	RegionEmulationNMI   = "snes.vector.emu.nmi"
	RegionEmulationIRQ   = "snes.vector.emu.irq"
	RegionNativeReset    = "snes.vector.native.reset"
	RegionNativeNMI      = "snes.vector.native.nmi"
	RegionNativeIRQ      = "snes.vector.native.irq"
)

// VectorsLoROM contains the CPU exception and reset vectors of LoROM cartridges.
var VectorsLoROM = &region.Layout{
	ID:              VectorsLoROMID,
	Name:            "SNES CPU Vectors (LoROM)",
	Origin:          region.OriginSpec,
	Confidence:      1.0,
	CanonicalOffset: 0x7FE0,
	AddressSpace:    "snes.rom",
	Tags:            []region.Tag{region.TagExecution, region.TagStructural},
	Notes:           "CPU exception and reset vectors for LoROM cartridges.",
	Provides:        []string{"execution_vectors"},
	Requires:        []string{HeaderLoROMID},
	Excludes:        []string{VectorsHiROMID},
	AppliesTo:       map[string][]string{"mapper": {MapperLoROM}},
	Regions: []region.Region{
		vector(RegionEmulationReset, "Emulation Reset Vector", 0x7FFC),
		vector(RegionEmulationNMI, "Emulation NMI Vector", 0x7FFA),
		vector(RegionEmulationIRQ, "Emulation IRQ Vector", 0x7FFE),
		vector(RegionNativeReset, "Native Reset Vector", 0x7FF4),
		vector(RegionNativeNMI, "Native NMI Vector", 0x7FEA),
		vector(RegionNativeIRQ, "Native IRQ Vector", 0x7FEE),
	},
}

// VectorsHiROM contains the vectors of HiROM and ExHiROM cartridges.
var VectorsHiROM = derive(VectorsLoROM, VectorsHiROMID, "SNES CPU Vectors (HiROM)", HiROMDelta,
	func(l *region.Layout) {
		l.Notes = "CPU exception and reset vectors for HiROM cartridges."
		l.Provides = []string{"execution_vectors", "execution_entry"}
		l.Requires = []string{HeaderHiROMID, AddressMapHiROMID}
		l.Excludes = []string{VectorsLoROMID}
		l.AppliesTo = map[string][]string{"mapper": {MapperHiROM, MapperExHiROM}}
	})

func vector(id, name string, offset int) region.Region {
	return region.Region{
		ID:           id,
		Name:         name,
		Kind:         region.KindCode,
		Origin:       region.OriginSpec,
		ByteOrder:    region.ByteOrderLittle,
		AddressSpace: "snes.rom",
		Offset:       offset,
		Size:         2,
		Required:     true,
		Confidence:   1.0,
		Tags:         []region.Tag{region.TagExecution},
	}
}
