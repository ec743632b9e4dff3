// Package verification runs header sanity checks against ROM data. The
// results are used to pick between mutually exclusive layouts, for example
// the LoROM, HiROM and ExHiROM header locations of SNES cartridges.
package verification

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/gba"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/sg"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/snes"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
	"github.com/retroenv/retrogolib/log"
)

// CopierHeaderSize is the size of the header that some copier devices
// prepend to SNES dumps.
const CopierHeaderSize = 512

// FactCopierHeader is set to "true" when a copier header was detected.
const FactCopierHeader = "copier_header"

// Check is a single header sanity check.
type Check struct {
	Name   string
	Passed bool
	Weight int
}

// Report is the outcome of checking one header layout against ROM data.
type Report struct {
	LayoutID string
	Checks   []Check
}

// Score returns the sum of the weights of all passed checks.
func (r Report) Score() int {
	var score int
	for _, c := range r.Checks {
		if c.Passed {
			score += c.Weight
		}
	}
	return score
}

// MaxScore returns the score of a report where every check passed.
func (r Report) MaxScore() int {
	var score int
	for _, c := range r.Checks {
		score += c.Weight
	}
	return score
}

func (r *Report) add(name string, passed bool, weight int) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Weight: weight})
}

// Evaluation contains the facts derived from ROM data and the reports of
// all checked header layouts, keyed by layout id.
type Evaluation struct {
	Facts   map[string]string
	Reports map[string]Report
}

// Score returns the score of the given layout or 0 if it was not checked.
func (e Evaluation) Score(layoutID string) int {
	return e.Reports[layoutID].Score()
}

// Verifier checks ROM headers of the known families.
type Verifier struct {
	logger *log.Logger
}

// New creates a new header verifier.
func New(logger *log.Logger) *Verifier {
	return &Verifier{
		logger: logger,
	}
}

// Evaluate checks the header layouts of the family against the ROM data.
// Families without checks return an empty evaluation.
func (v *Verifier) Evaluate(fam *family.Family, data []byte) Evaluation {
	ev := Evaluation{
		Facts:   map[string]string{},
		Reports: map[string]Report{},
	}

	switch fam.ID {
	case snes.Family.ID:
		v.evaluateSNES(&ev, data)
	case gba.Family.ID:
		ev.Reports[gba.HeaderID] = v.GBAHeader(data)
	case sg.Family.ID:
		ev.Reports[sg.HeaderID] = v.SGHeader(data)
	}
	return ev
}

// StripCopierHeader removes a 512 byte copier header if the data size
// indicates one.
func StripCopierHeader(data []byte) ([]byte, bool) {
	if len(data) > CopierHeaderSize && len(data)%1024 == CopierHeaderSize {
		return data[CopierHeaderSize:], true
	}
	return data, false
}

func (v *Verifier) evaluateSNES(ev *Evaluation, data []byte) {
	data, stripped := StripCopierHeader(data)
	if stripped {
		ev.Facts[FactCopierHeader] = "true"
	}

	sum := byteSum(data)
	bestScore := 0
	for _, header := range []*region.Layout{snes.HeaderLoROM, snes.HeaderHiROM, snes.HeaderExHiROM} {
		report := v.SNESHeader(data, header, sum)
		ev.Reports[header.ID] = report

		score := report.Score()
		mappers := header.AppliesTo[snes.FactMapper]
		if score > bestScore && len(mappers) > 0 {
			bestScore = score
			ev.Facts[snes.FactMapper] = mappers[0]
		}
	}
}

// SNESHeader checks a SNES header layout. The sum is the 16 bit sum of all
// ROM bytes, it is only compared for ROM sizes that are a power of two
// since other sizes are mirrored before summing.
func (v *Verifier) SNESHeader(data []byte, header *region.Layout, sum uint16) Report {
	report := Report{LayoutID: header.ID}

	checksum, errChecksum := readUint16(data, header, snes.RegionChecksum, binary.LittleEndian)
	complement, errComplement := readUint16(data, header, snes.RegionChecksumComplement, binary.LittleEndian)
	if errChecksum != nil || errComplement != nil {
		v.logger.Debug("SNES header outside of ROM data",
			log.String("layout", header.ID),
			log.Hex("offset", header.CanonicalOffset),
			log.Int("size", len(data)))
		report.add("readable", false, 1)
		return report
	}

	report.add("checksum_complement", checksum^complement == 0xFFFF, 4)
	if bits.OnesCount(uint(len(data))) == 1 {
		passed := checksum == sum
		if !passed {
			v.logger.Debug("SNES checksum mismatch",
				log.String("layout", header.ID),
				log.Hex("expected", checksum),
				log.Hex("got", sum))
		}
		report.add("checksum_sum", passed, 2)
	}

	mapMode, err := readRegion(data, header, snes.RegionMapMode)
	report.add("map_mode", err == nil && mapModeMatches(mapMode[0], header), 2)

	title, err := readRegion(data, header, snes.RegionGameTitle)
	report.add("title", err == nil && isPrintableASCII(bytes.TrimRight(title, "\x00 ")), 1)

	reset, ok := snes.VectorsLoROM.Region(snes.RegionEmulationReset)
	if ok {
		reset = reset.WithOffsetDelta(header.CanonicalOffset - snes.HeaderLoROM.CanonicalOffset)
		raw, err := reset.Read(data)
		report.add("reset_vector", err == nil && binary.LittleEndian.Uint16(raw) >= 0x8000, 1)
	}
	return report
}

// mapModeMatches returns whether the map mode byte is valid for the mapping
// type the header layout applies to.
func mapModeMatches(mode byte, header *region.Layout) bool {
	if mode&0xE0 != 0x20 {
		return false
	}
	mappers := header.AppliesTo[snes.FactMapper]
	if len(mappers) == 0 {
		return false
	}

	switch low := mode & 0x0F; mappers[0] {
	case snes.MapperLoROM:
		return low == 0x0 || low == 0x2 || low == 0x3
	case snes.MapperHiROM:
		return low == 0x1 || low == 0xA
	case snes.MapperExHiROM:
		return low == 0x5
	default:
		return false
	}
}

// GBAHeader checks the GBA cartridge header.
func (v *Verifier) GBAHeader(data []byte) Report {
	report := Report{LayoutID: gba.HeaderID}

	if len(data) < gba.HeaderSize {
		report.add("readable", false, 1)
		return report
	}

	fixed, _ := readRegion(data, gba.Header, gba.RegionFixedValue)
	report.add("fixed_value", fixed[0] == gba.FixedValue, 2)

	check, _ := readRegion(data, gba.Header, gba.RegionComplementCheck)
	expected := GBAComplement(data)
	if check[0] != expected {
		v.logger.Debug("GBA complement check mismatch",
			log.Hex("expected", expected),
			log.Hex("got", check[0]))
	}
	report.add("complement_check", check[0] == expected, 4)

	title, _ := readRegion(data, gba.Header, gba.RegionGameTitle)
	report.add("title", isPrintableASCII(bytes.TrimRight(title, "\x00")), 1)

	entry, _ := readRegion(data, gba.Header, gba.RegionEntryPoint)
	report.add("entry_branch", entry[3] == 0xEA, 1)
	return report
}

// GBAComplement calculates the header complement check over 0xA0-0xBC.
// The data must contain at least the complete header.
func GBAComplement(data []byte) byte {
	var sum byte
	for _, b := range data[0xA0:0xBD] {
		sum += b
	}
	return -(sum + 0x19)
}

// SGHeader checks the Mega Drive cartridge header.
func (v *Verifier) SGHeader(data []byte) Report {
	report := Report{LayoutID: sg.HeaderID}

	consoleName, ok := sg.Header.Region(sg.RegionConsoleName)
	if !ok {
		return report
	}
	raw, err := consoleName.Read(data)
	if err != nil {
		report.add("readable", false, 1)
		return report
	}
	name, err := consoleName.Decode(raw)
	report.add("console_name", err == nil && strings.HasPrefix(name, "SEGA"), 4)

	if len(data) > 0x200 {
		checksum, err := readUint16(data, sg.Header, sg.RegionChecksum, binary.BigEndian)
		passed := err == nil && checksum == wordSum(data[0x200:])
		report.add("checksum", passed, 2)
	}

	regionCode, ok := sg.Header.Region(sg.RegionRegionCode)
	if ok {
		raw, err := regionCode.Read(data)
		if err == nil {
			_, known := regionCode.Interpret(raw)
			report.add("region_code", known, 1)
		}
	}
	return report
}

func readRegion(data []byte, layout *region.Layout, id string) ([]byte, error) {
	r, ok := layout.Region(id)
	if !ok {
		return nil, fmt.Errorf("layout '%s' has no region '%s'", layout.ID, id)
	}
	return r.Read(data)
}

func readUint16(data []byte, layout *region.Layout, id string, order binary.ByteOrder) (uint16, error) {
	raw, err := readRegion(data, layout, id)
	if err != nil {
		return 0, err
	}
	return order.Uint16(raw), nil
}

func byteSum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}

// wordSum adds big endian 16 bit words, an odd trailing byte is ignored.
func wordSum(data []byte) uint16 {
	var sum uint16
	for i := 0; i+1 < len(data); i += 2 {
		sum += binary.BigEndian.Uint16(data[i:])
	}
	return sum
}

func isPrintableASCII(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}
