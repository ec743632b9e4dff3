package app

import (
	"testing"

	"github.com/SophiaFrassetto/TransROM-IA/internal/detector"
	"github.com/SophiaFrassetto/TransROM-IA/internal/loader"
	"github.com/SophiaFrassetto/TransROM-IA/internal/options"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRegionValue(t *testing.T) {
	tests := []struct {
		name string
		reg  region.Region
		raw  []byte
		want string
	}{
		{
			name: "known value",
			reg: region.Region{
				ID: "fixed",
				DefaultValues: []region.MappedDefaultValue{
					{ID: "ok", Raw: []byte{0x96}, Meaning: "fixed value"},
				},
			},
			raw:  []byte{0x96},
			want: "fixed value",
		},
		{
			name: "ascii text",
			reg:  region.Region{ID: "title", Encoding: region.EncodingASCII},
			raw:  []byte("POKEMON\x00\x00"),
			want: `"POKEMON"`,
		},
		{
			name: "raw bytes",
			reg:  region.Region{ID: "data"},
			raw:  []byte{0xDE, 0xAD},
			want: "DE AD",
		},
		{
			name: "long raw bytes",
			reg:  region.Region{ID: "data"},
			raw:  make([]byte, 20),
			want: "00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 ...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionValue(tt.reg, tt.raw))
		})
	}
}

func TestPrintInfo(t *testing.T) {
	logger := log.NewTestLogger(t)

	r, err := loader.New().LoadFromBytes("game.gba", make([]byte, 0x200))
	assert.NoError(t, err)
	families := detector.New(logger).Enrich(r)
	assert.Len(t, families, 1)
	assert.NotEmpty(t, r.Regions)

	opts := options.NewProgram()
	opts.Regions = true
	PrintInfo(logger, opts, r, families)

	unknown, err := loader.New().LoadFromBytes("data.xyz", []byte{1})
	assert.NoError(t, err)
	PrintInfo(logger, opts, unknown, nil)
}
