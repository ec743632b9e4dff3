// Package hardware contains descriptors of console and cartridge hardware.
package hardware

import "github.com/SophiaFrassetto/TransROM-IA/internal/region"

// CompressionType identifies a compression scheme. Only the identity is
// described, no codecs are implemented.
type CompressionType string

// Known compression types.
const (
	CompressionLZ77     CompressionType = "lz77"    // GBA BIOS 0x10
	CompressionHuffman  CompressionType = "huffman" // GBA BIOS 0x20
	CompressionRLE      CompressionType = "rle"     // GBA BIOS 0x30
	CompressionSDD1     CompressionType = "sdd1"
	CompressionLCLZ2    CompressionType = "lc_lz2"
	CompressionLCLZ3    CompressionType = "lc_lz3"
	CompressionSegaRLE  CompressionType = "sega_rle"
	CompressionNemesis  CompressionType = "nemesis"
	CompressionKosinski CompressionType = "kosinski"
	CompressionEnigma   CompressionType = "enigma"
	CompressionCustom   CompressionType = "custom"
	CompressionUnknown  CompressionType = "unknown"
)

func (c CompressionType) String() string { return string(c) }

// CPUInfo describes the main CPU of a family.
type CPUInfo struct {
	ID            string // "arm7tdmi", "65c816", "m68000"
	Name          string
	Bitness       int
	ByteOrder     region.ByteOrder
	SupportsThumb *bool
	SupportsModes []string
	Notes         string
	Confidence    float64
}

// PointerModel describes how pointers are typically stored.
type PointerModel struct {
	CommonWidths      []int
	RelativeSupported bool
	Banked            bool
	DefaultSchemaID   string
	Notes             string
	Confidence        float64
}

// MemoryModel lists the address spaces of a family.
type MemoryModel struct {
	AddressSpaceIDs []string
	Mirrored        bool
	Banked          bool
	Notes           string
	Confidence      float64
}

// BankingModel describes bank switching support.
type BankingModel struct {
	Supported  bool
	Types      []string // "LoROM", "HiROM"
	BankSize   int      // 0 if not applicable
	Notes      string
	Confidence float64
}

// CompressionSupport describes common compression schemes of a family.
type CompressionSupport struct {
	Supported        bool
	CommonTypes      []CompressionType
	HardwareAssisted bool
	Notes            string
	Confidence       float64
}

// CartridgeHardware describes optional hardware embedded in cartridges.
type CartridgeHardware struct {
	ExtraCPU     bool
	Coprocessors []string
	RTC          bool
	Sensors      []string
	Rumble       bool
	Notes        string
	Confidence   float64
}

// FamilyHardware bundles the built-in hardware characteristics of a family.
type FamilyHardware struct {
	CPU                CPUInfo
	PointerModel       PointerModel
	MemoryModel        MemoryModel
	BankingModel       BankingModel
	CompressionSupport CompressionSupport
	Notes              string
	Confidence         float64
}

// Bool returns a pointer to the given value, used for optional flags.
func Bool(b bool) *bool {
	return &b
}
