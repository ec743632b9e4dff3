// Package app provides the main application helper for the extractor.
package app

import (
	"fmt"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/options"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
	"github.com/SophiaFrassetto/TransROM-IA/internal/rom"
	"github.com/SophiaFrassetto/TransROM-IA/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// maxRawPreview is the maximum number of bytes of a region without a known
// meaning that are printed as hex.
const maxRawPreview = 16

// PrintInfo prints the information about the input file and its resolved
// family.
func PrintInfo(logger *log.Logger, opts options.Program, r *rom.Rom, families []*family.Family) {
	if opts.Quiet {
		return
	}

	if len(families) == 0 {
		logger.Info("Processing ROM",
			log.String("file", r.Path),
			log.Int("size", r.Size),
			log.String("family", "unknown"),
		)
		return
	}

	names := make([]string, 0, len(families))
	for _, fam := range families {
		names = append(names, fam.ID)
	}
	logger.Info("Processing ROM",
		log.String("file", r.Path),
		log.Int("size", r.Size),
		log.String("family", r.FamilyID),
		log.String("candidates", strings.Join(names, ",")),
		log.String("layouts", strings.Join(r.LayoutIDs, ",")),
	)
	if len(families) > 1 {
		logger.Warn("File extension matches multiple families, using the first one")
	}

	if opts.Regions {
		PrintRegions(logger, r)
	}
}

// PrintRegions prints the decoded values of all resolved regions that are
// located in the ROM image.
func PrintRegions(logger *log.Logger, r *rom.Rom) {
	data, stripped := verification.StripCopierHeader(r.Data)
	if stripped {
		logger.Debug("Ignoring copier header", log.Int("size", verification.CopierHeaderSize))
	}

	for _, reg := range r.Regions {
		if !strings.HasSuffix(reg.AddressSpace, ".rom") || reg.Size == 0 {
			continue
		}

		raw, err := reg.Read(data)
		if err != nil {
			logger.Debug("Region not readable", log.String("region", reg.ID), log.Err(err))
			continue
		}

		logger.Info("Region",
			log.String("id", reg.ID),
			log.Hex("offset", reg.Offset),
			log.Int("size", reg.Size),
			log.String("value", RegionValue(reg, raw)),
		)
	}
}

// RegionValue returns a human readable value of the raw region bytes.
// Known default values take precedence over decoded text.
func RegionValue(reg region.Region, raw []byte) string {
	if v, ok := reg.Interpret(raw); ok {
		return v.Meaning
	}

	if reg.Encoding != region.EncodingNone {
		if text, err := reg.Decode(raw); err == nil {
			return fmt.Sprintf("%q", text)
		}
	}

	preview := raw
	if len(preview) > maxRawPreview {
		preview = preview[:maxRawPreview]
	}
	parts := make([]string, len(preview))
	for i, b := range preview {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	value := strings.Join(parts, " ")
	if len(raw) > maxRawPreview {
		value += " ..."
	}
	return value
}
