package writer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/text/language"
)

func testCandidates() []*candidate.TextCandidate {
	plain := candidate.New(0x40, 0x4B, []byte("HELLO\nWORLD"))

	scored := candidate.New(0x1234, 0x1240, []byte("Press start\r"))
	scored.Language = language.English
	scored.SetPerplexity(42.123)

	return []*candidate.TextCandidate{plain, scored}
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Format(&buf, testCandidates()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "Offset (Hex)   | Size       | Language     | Perplexity   | "))
	assert.True(t, strings.HasSuffix(lines[0], "| Decoded Text"))
	assert.True(t, strings.HasPrefix(lines[1], strings.Repeat("-", 14)+"-|-"))

	assert.True(t, strings.HasPrefix(lines[2], "0x0000000040   | 11         | ?            | -            | 48 45 4C 4C 4F 0A"))
	assert.True(t, strings.HasSuffix(lines[2], "| HELLO WORLD"))

	assert.True(t, strings.HasPrefix(lines[3], "0x0000001234   | 12         | en           | 42.12        | "))
	assert.True(t, strings.HasSuffix(lines[3], "| Press start "))
}

func TestFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Format(&buf, nil))
	assert.Equal(t, NoCandidates+"\n", buf.String())
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	w := New()

	path, err := w.Save(dir, "game", "_medium_no_NLP", testCandidates())
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "game_medium_no_NLP.txt"), path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "HELLO WORLD"))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveKeepsBackups(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2024, 5, 17, 13, 45, 9, 123456000, time.UTC)
	w := NewWithClock(func() time.Time { return clock })

	var contents []string
	for i := range 4 {
		cands := []*candidate.TextCandidate{
			candidate.New(i, i+8, []byte("run "+string(rune('A'+i))+" text")),
		}
		_, err := w.Save(dir, "game", "", cands)
		assert.NoError(t, err)

		var buf bytes.Buffer
		assert.NoError(t, Format(&buf, cands))
		contents = append(contents, buf.String())
	}

	path := Path(dir, "game", "")
	expected := map[string]string{
		path:                                   contents[3],
		path + ".bak_20240517_134509":          contents[0],
		path + ".bak_20240517_134509_123456":   contents[1],
		path + ".bak_20240517_134509_123456_1": contents[2],
	}

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, len(expected))

	for file, want := range expected {
		data, err := os.ReadFile(file)
		assert.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	assert.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := New().Save(filepath.Join(blocker, "sub"), "game", "", nil)
	assert.True(t, errors.Is(err, ErrOutputWriteFailure))
}
