package region

import "slices"

// Kind classifies the content of a region.
type Kind string

// Region kinds.
const (
	KindHeader       Kind = "header"
	KindCode         Kind = "code"
	KindData         Kind = "data"
	KindText         Kind = "text"
	KindPointer      Kind = "pointer"
	KindPointerTable Kind = "pointer_table"
	KindCompressed   Kind = "compressed"
	KindAsset        Kind = "asset"
	KindBank         Kind = "bank"
	KindMapper       Kind = "mapper"
	KindMapping      Kind = "mapping"
	KindReserved     Kind = "reserved"
	KindFreeSpace    Kind = "free_space"
	KindMirror       Kind = "mirror"
	KindGraphics     Kind = "graphics"
	KindTilemap      Kind = "tilemap"
	KindPalette      Kind = "palette"
	KindUnknown      Kind = "unknown"
)

func (k Kind) String() string { return string(k) }

// Encoding is the character encoding of a text region.
type Encoding string

// Text encodings.
const (
	EncodingNone     Encoding = ""
	EncodingASCII    Encoding = "ascii"
	EncodingUTF8     Encoding = "utf8"
	EncodingUTF16    Encoding = "utf16"
	EncodingShiftJIS Encoding = "shift_jis"
	EncodingTBL      Encoding = "tbl"
	EncodingCustom   Encoding = "custom"
)

func (e Encoding) String() string { return string(e) }

// Origin describes where a piece of knowledge comes from.
type Origin string

// Knowledge origins.
const (
	OriginSpec          Origin = "spec"
	OriginDiscovered    Origin = "discovered"
	OriginInferred      Origin = "inferred"
	OriginToolGenerated Origin = "tool_generated"
	OriginObserved      Origin = "observed"
)

func (o Origin) String() string { return string(o) }

// ByteOrder is the byte order of multi byte values.
type ByteOrder string

// Byte orders.
const (
	ByteOrderNone   ByteOrder = ""
	ByteOrderLittle ByteOrder = "little"
	ByteOrderBig    ByteOrder = "big"
	ByteOrderMixed  ByteOrder = "mixed"
)

func (b ByteOrder) String() string { return string(b) }

// AddressSpaceKind classifies an address space.
type AddressSpaceKind string

// Address space kinds.
const (
	AddressSpaceROM     AddressSpaceKind = "rom"
	AddressSpaceWRAM    AddressSpaceKind = "wram"
	AddressSpaceVRAM    AddressSpaceKind = "vram"
	AddressSpaceSRAM    AddressSpaceKind = "sram"
	AddressSpaceIO      AddressSpaceKind = "io"
	AddressSpaceBIOS    AddressSpaceKind = "bios"
	AddressSpaceUnknown AddressSpaceKind = "unknown"
)

func (a AddressSpaceKind) String() string { return string(a) }

// Tag adds a semantic label to regions and layouts.
type Tag string

// Tags.
const (
	TagValidation    Tag = "validation"    // required for ROM validity or boot
	TagExecution     Tag = "execution"     // affects execution flow
	TagStructural    Tag = "structural"    // defines structure, headers and tables
	TagInformational Tag = "informational" // descriptive metadata like titles
	TagGraphics      Tag = "graphics"
	TagAudio         Tag = "audio"
	TagExperimental  Tag = "experimental" // known but poorly documented
	TagDeprecated    Tag = "deprecated"
	TagOptional      Tag = "optional" // valid but not always present
)

func (t Tag) String() string { return string(t) }

// HasTag returns whether the tag list contains the given tag.
func HasTag(tags []Tag, tag Tag) bool {
	return slices.Contains(tags, tag)
}
