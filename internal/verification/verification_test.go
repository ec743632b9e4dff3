package verification

import (
	"encoding/binary"
	"testing"

	"github.com/SophiaFrassetto/TransROM-IA/internal/family/gba"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/sg"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family/snes"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestEvaluateSNES(t *testing.T) {
	logger := log.NewTestLogger(t)
	v := New(logger)

	tests := []struct {
		name       string
		size       int
		header     int
		mapMode    byte
		copier     bool
		wantMapper string
	}{
		{name: "lorom", size: 0x10000, header: 0x7FC0, mapMode: 0x20, wantMapper: snes.MapperLoROM},
		{name: "hirom", size: 0x10000, header: 0xFFC0, mapMode: 0x21, wantMapper: snes.MapperHiROM},
		{name: "exhirom", size: 0x410000, header: 0x40FFC0, mapMode: 0x25, wantMapper: snes.MapperExHiROM},
		{name: "lorom with copier header", size: 0x10000, header: 0x7FC0, mapMode: 0x30, copier: true,
			wantMapper: snes.MapperLoROM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildSNESROM(tt.size, tt.header, tt.mapMode)
			if tt.copier {
				data = append(make([]byte, CopierHeaderSize), data...)
			}

			ev := v.Evaluate(snes.Family, data)
			assert.Equal(t, tt.wantMapper, ev.Facts[snes.FactMapper])
			if tt.copier {
				assert.Equal(t, "true", ev.Facts[FactCopierHeader])
			}
		})
	}
}

func TestSNESHeaderScores(t *testing.T) {
	v := New(log.NewTestLogger(t))
	data := buildSNESROM(0x10000, 0x7FC0, 0x20)
	sum := byteSum(data)

	lorom := v.SNESHeader(data, snes.HeaderLoROM, sum)
	assert.Equal(t, lorom.MaxScore(), lorom.Score())

	hirom := v.SNESHeader(data, snes.HeaderHiROM, sum)
	assert.Equal(t, 0, hirom.Score())

	exhirom := v.SNESHeader(data, snes.HeaderExHiROM, sum)
	assert.Equal(t, 0, exhirom.Score())
	assert.Equal(t, "readable", exhirom.Checks[0].Name)
}

func TestExHiROMHeaderLocation(t *testing.T) {
	v := New(log.NewTestLogger(t))
	data := buildSNESROM(0x410000, 0x40FFC0, 0x25)

	assert.Equal(t, 0x40FFC0, snes.HeaderExHiROM.CanonicalOffset)
	report := v.SNESHeader(data, snes.HeaderExHiROM, byteSum(data))
	assert.Equal(t, report.MaxScore(), report.Score())

	ev := v.Evaluate(snes.Family, data)
	assert.Equal(t, report.Score(), ev.Score(snes.HeaderExHiROMID))
	assert.Equal(t, 0, ev.Score(snes.HeaderLoROMID))
}

func TestEvaluateSNESWithoutHeader(t *testing.T) {
	v := New(log.NewTestLogger(t))
	ev := v.Evaluate(snes.Family, make([]byte, 0x100))

	_, ok := ev.Facts[snes.FactMapper]
	assert.False(t, ok)
}

func TestGBAHeader(t *testing.T) {
	v := New(log.NewTestLogger(t))

	data := make([]byte, 0x200)
	data[3] = 0xEA
	copy(data[0xA0:], "POKEMON")
	copy(data[0xAC:], "BPEE")
	copy(data[0xB0:], "01")
	data[0xB2] = gba.FixedValue
	data[0xBD] = GBAComplement(data)

	report := v.GBAHeader(data)
	assert.Equal(t, report.MaxScore(), report.Score())

	data[0xBD]++
	report = v.GBAHeader(data)
	assert.Equal(t, report.MaxScore()-4, report.Score())

	ev := v.Evaluate(gba.Family, make([]byte, 0x10))
	assert.Equal(t, 0, ev.Score(gba.HeaderID))
}

func TestSGHeader(t *testing.T) {
	v := New(log.NewTestLogger(t))

	data := make([]byte, 0x400)
	copy(data[0x100:], "SEGA MEGA DRIVE ")
	copy(data[0x1F0:], "JUE             ")
	for i := 0x200; i < len(data); i++ {
		data[i] = byte(i)
	}
	binary.BigEndian.PutUint16(data[0x190:], wordSum(data[0x200:]))

	report := v.SGHeader(data)
	assert.Equal(t, sg.HeaderID, report.LayoutID)
	assert.Equal(t, report.MaxScore(), report.Score())

	ev := v.Evaluate(sg.Family, data)
	assert.Equal(t, report.Score(), ev.Score(sg.HeaderID))

	copy(data[0x100:], "NOPE")
	report = v.SGHeader(data)
	assert.Equal(t, report.MaxScore()-4, report.Score())
}

func TestStripCopierHeader(t *testing.T) {
	data, stripped := StripCopierHeader(make([]byte, 0x8000+CopierHeaderSize))
	assert.True(t, stripped)
	assert.Len(t, data, 0x8000)

	data, stripped = StripCopierHeader(make([]byte, 0x8000))
	assert.False(t, stripped)
	assert.Len(t, data, 0x8000)
}

// buildSNESROM creates an image with a valid header at the given offset.
func buildSNESROM(size, header int, mapMode byte) []byte {
	data := make([]byte, size)
	copy(data[header:], "TEST GAME            ")
	data[header+0x15] = mapMode
	binary.LittleEndian.PutUint16(data[header+0x3C:], 0x8000)

	// checksum and complement bytes always add 0x1FE to the sum
	binary.LittleEndian.PutUint16(data[header+0x1C:], 0xFFFF)
	sum := byteSum(data)
	binary.LittleEndian.PutUint16(data[header+0x1C:], ^sum)
	binary.LittleEndian.PutUint16(data[header+0x1E:], sum)
	return data
}
