package extractor

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digimosa/phonescan/internal/matcher"
)

func testOptions() Options {
	return Options{
		Region:   "US",
		Leniency: matcher.Valid,
		MaxTries: math.MaxInt32,
	}
}

func TestTextScannerFindsNumbers(t *testing.T) {
	s := &TextScanner{opts: testOptions()}

	matches, err := s.Scan(strings.NewReader("Call 650-253-0000 today"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, "650-253-0000", matches[0].Raw)
	assert.Equal(t, "+16502530000", matches[0].E164)
	assert.Equal(t, "US", matches[0].Region)
	assert.Equal(t, int64(5), matches[0].Offset)
	assert.Contains(t, matches[0].Snippet, "650-253-0000")
}

func TestTextScannerBinaryGarbage(t *testing.T) {
	s := &TextScanner{opts: testOptions()}

	// Control bytes around the number must not shift its offset.
	input := "\x00\x01\x02so: 650-253-0000\x00"
	matches, err := s.Scan(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(7), matches[0].Offset)
}

func TestTextScannerNoNumbers(t *testing.T) {
	s := &TextScanner{opts: testOptions()}

	matches, err := s.Scan(strings.NewReader("nothing to see"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSnippetAround(t *testing.T) {
	text := "aaa 650-253-0000 bbb"
	snippet := snippetAround(text, 4, 16)
	assert.Equal(t, text, snippet) // short text: whole thing fits

	long := strings.Repeat("x", 100) + "650-253-0000" + strings.Repeat("y", 100)
	snippet = snippetAround(long, 100, 112)
	assert.Len(t, snippet, 12+2*30)
	assert.Contains(t, snippet, "650-253-0000")
}

func TestSanitizeBytes(t *testing.T) {
	in := []byte("a\x00b\tc\nd\x7fé")
	out := sanitizeBytes(in)
	assert.Equal(t, len(in), len(out), "sanitizing must preserve length")
	assert.Equal(t, "a b\tc\nd é", string(out))
}

func TestFactorySelection(t *testing.T) {
	f := NewFactory(testOptions())

	scanner, ext, err := f.GetScannerForFile("contacts.pdf")
	require.NoError(t, err)
	assert.Equal(t, ".pdf", ext)
	assert.IsType(t, &PDFScanner{}, scanner)

	scanner, _, err = f.GetScannerForFile("contacts.xlsx")
	require.NoError(t, err)
	assert.IsType(t, &ExcelScanner{}, scanner)

	scanner, _, err = f.GetScannerForFile("notes.txt")
	require.NoError(t, err)
	assert.IsType(t, &TextScanner{}, scanner)

	_, _, err = f.GetScannerForFile("movie.mp4")
	assert.Error(t, err)
}
