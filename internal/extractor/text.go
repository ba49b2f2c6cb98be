package extractor

import (
	"io"

	"github.com/nyaruka/phonenumbers"

	"github.com/digimosa/phonescan/internal/matcher"
	"github.com/digimosa/phonescan/internal/models"
)

// ContentScanner defines the interface for content scanning.
type ContentScanner interface {
	Scan(reader io.Reader) ([]models.Match, error)
}

// TextScanner scans plain text files. The whole file is read into memory:
// the matcher needs the surrounding text of each candidate for its
// context checks, and chunked reading would report offsets relative to a
// window rather than the file.
type TextScanner struct {
	opts Options
}

func (s *TextScanner) Scan(reader io.Reader) ([]models.Match, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	// Sanitize binary garbage to spaces. The replacement is byte-for-byte,
	// so match offsets still point into the original file.
	text := string(sanitizeBytes(data))
	return findNumbers(text, s.opts, 0), nil
}

// findNumbers runs the match iterator over text and converts each match
// to the model form, adding baseOffset to the reported positions.
func findNumbers(text string, opts Options, baseOffset int64) []models.Match {
	var matches []models.Match

	m := matcher.NewWithOptions(text, opts.Region, opts.Leniency, opts.MaxTries)
	for m.HasNext() {
		match, ok := m.Next()
		if !ok {
			break
		}
		matches = append(matches, models.Match{
			Raw:     match.Raw,
			E164:    phonenumbers.Format(match.Number, phonenumbers.E164),
			Region:  phonenumbers.GetRegionCodeForNumber(match.Number),
			Offset:  baseOffset + int64(match.Start),
			Snippet: snippetAround(text, match.Start, match.End()),
		})
	}
	return matches
}

// snippetAround returns the matched substring with up to contextBytes of
// surrounding text on each side, clamped to rune boundaries.
func snippetAround(text string, start, end int) string {
	const contextBytes = 30

	lo := start - contextBytes
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !isRuneStart(text[lo]) {
		lo--
	}
	hi := end + contextBytes
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !isRuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// sanitizeBytes replaces non-printable characters with spaces, keeping
// tabs, newlines and everything above ASCII, which catches UTF-8
// sequences in mixed binary/text files.
func sanitizeBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		if (b >= 32 && b <= 126) || b == 9 || b == 10 || b == 13 || b > 127 {
			out[i] = b
		} else {
			out[i] = ' '
		}
	}
	return out
}
