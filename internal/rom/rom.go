// Package rom contains the loaded ROM record that is enriched by the
// resolution stages.
package rom

import (
	"path/filepath"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/hardware"
	"github.com/SophiaFrassetto/TransROM-IA/internal/region"
)

// Rom is a loaded binary image. The loader creates it, later stages fill in
// the family and layout fields. A Rom is never modified concurrently.
type Rom struct {
	ID        string
	Name      string
	Path      string
	Extension string // lowercase including the leading dot, empty if none
	Size      int
	Data      []byte

	FamilyID  string
	LayoutIDs []string
	Regions   []region.Region
	Hardware  *hardware.CartridgeHardware // optional override of the family default

	Notes string
}

// NormalizeExtension returns the extension in the canonical form used by
// family definitions: lowercase with a leading dot. An empty input stays
// empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Stem returns the file name of the path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
