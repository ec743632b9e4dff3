// Package writer formats text candidates as a table and saves them to files
// without ever overwriting earlier results.
package writer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
)

// ErrOutputWriteFailure is returned when the result file or its backup
// could not be written.
var ErrOutputWriteFailure = errors.New("output write failure")

// Extension is the file extension of result files.
const Extension = ".txt"

// NoCandidates is written instead of a table for an empty candidate list.
const NoCandidates = "No text candidates found."

const (
	backupLayout      = "20060102_150405"
	maxBackupAttempts = 1000
)

var columns = []struct {
	title string
	width int
}{
	{"Offset (Hex)", 14},
	{"Size", 10},
	{"Language", 12},
	{"Perplexity", 12},
	{"Hex Preview (first 16 bytes)", 50},
}

const textColumn = "Decoded Text"

// Format writes the candidates as a table.
func Format(w io.Writer, candidates []*candidate.TextCandidate) error {
	if len(candidates) == 0 {
		if _, err := fmt.Fprintln(w, NoCandidates); err != nil {
			return fmt.Errorf("writing empty result: %w", err)
		}
		return nil
	}

	header := make([]string, 0, len(columns)+1)
	separator := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		header = append(header, fmt.Sprintf("%-*s", col.width, col.title))
		separator = append(separator, strings.Repeat("-", col.width))
	}
	header = append(header, textColumn)
	separator = append(separator, strings.Repeat("-", 50))

	if _, err := fmt.Fprintln(w, strings.Join(header, " | ")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.Join(separator, "-|-")); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, c := range candidates {
		if _, err := fmt.Fprintf(w, "%-14s | %-10d | %-12s | %-12s | %-50s | %s\n",
			fmt.Sprintf("0x%010X", c.Start),
			c.Size(),
			languageString(c),
			perplexityString(c),
			c.HexPreview(),
			flatten(c.Text()),
		); err != nil {
			return fmt.Errorf("writing candidate at offset 0x%X: %w", c.Start, err)
		}
	}
	return nil
}

func languageString(c *candidate.TextCandidate) string {
	if !c.HasLanguage() {
		return "?"
	}
	return c.Language.String()
}

func perplexityString(c *candidate.TextCandidate) string {
	if c.Perplexity == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *c.Perplexity)
}

// flatten keeps each candidate on a single table row.
func flatten(text string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
}

// Writer saves result files. An existing file is moved to a timestamped
// backup before the new content is put in place.
type Writer struct {
	now func() time.Time
}

// New creates a writer that uses the system clock for backup names.
func New() *Writer {
	return &Writer{now: time.Now}
}

// NewWithClock creates a writer that uses the given clock for backup names.
func NewWithClock(now func() time.Time) *Writer {
	return &Writer{now: now}
}

// Path returns the result file path for the given output directory, file
// stem and suffix.
func Path(dir, stem, suffix string) string {
	return filepath.Join(dir, stem+suffix+Extension)
}

// Save writes the candidates to <dir>/<stem><suffix>.txt and returns the
// path of the written file.
func (w *Writer) Save(dir, stem, suffix string, candidates []*candidate.TextCandidate) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory '%s': %w: %w", dir, ErrOutputWriteFailure, err)
	}

	path := Path(dir, stem, suffix)
	if _, err := w.backup(path); err != nil {
		return "", err
	}

	if err := writeAtomic(path, func(out io.Writer) error {
		return Format(out, candidates)
	}); err != nil {
		return "", fmt.Errorf("writing '%s': %w: %w", path, ErrOutputWriteFailure, err)
	}
	return path, nil
}

// backup moves an existing file at path to a backup name that does not
// exist yet. It returns the backup path or an empty string if there was
// nothing to back up.
func (w *Writer) backup(path string) (string, error) {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("checking '%s': %w: %w", path, ErrOutputWriteFailure, err)
	}

	now := w.now()
	base := fmt.Sprintf("%s.bak_%s", path, now.Format(backupLayout))
	candidates := []string{
		base,
		fmt.Sprintf("%s_%06d", base, now.Nanosecond()/1000),
	}
	for i := 1; i < maxBackupAttempts; i++ {
		candidates = append(candidates, fmt.Sprintf("%s_%06d_%d", base, now.Nanosecond()/1000, i))
	}

	for _, backupPath := range candidates {
		if _, err := os.Lstat(backupPath); err == nil {
			continue
		}
		if err := os.Rename(path, backupPath); err != nil {
			return "", fmt.Errorf("backing up '%s': %w: %w", path, ErrOutputWriteFailure, err)
		}
		return backupPath, nil
	}
	return "", fmt.Errorf("no free backup name for '%s': %w", path, ErrOutputWriteFailure)
}

// writeAtomic writes to a temporary file in the destination directory and
// renames it into place once all content is written.
func writeAtomic(dest string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	bw := bufio.NewWriter(tmp)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, dest)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
