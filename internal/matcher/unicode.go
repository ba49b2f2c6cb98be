package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// latinBlocks covers the Unicode blocks Basic Latin, Latin-1 Supplement,
// Latin Extended-A, Latin Extended-B, Combining Diacritical Marks and
// Latin Extended Additional. The first four blocks are contiguous.
var latinBlocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0000, Hi: 0x024F, Stride: 1},
		{Lo: 0x0300, Hi: 0x036F, Stride: 1},
		{Lo: 0x1E00, Hi: 0x1EFF, Stride: 1},
	},
}

// isLatinLetter reports whether the rune is an alphabetic character or a
// combining mark from one of the Latin blocks. A number directly adjacent
// to such a character is unlikely to be a phone number.
func isLatinLetter(r rune) bool {
	// Combining marks are a subset of non-spacing-mark.
	if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
		return false
	}
	return unicode.Is(latinBlocks, r)
}

// isInvalidPunctuationSymbol reports whether the rune is a percent sign or
// a currency symbol.
func isInvalidPunctuationSymbol(r rune) bool {
	return r == '%' || unicode.Is(unicode.Sc, r)
}

// decimalDigitValue returns the numeric value of a Unicode decimal digit.
// Each Nd range in the Unicode tables is a contiguous run for digits 0-9,
// so the value is the offset from the range start.
func decimalDigitValue(r rune) (int, bool) {
	if '0' <= r && r <= '9' {
		return int(r - '0'), true
	}
	if r < utf8.RuneSelf || !unicode.Is(unicode.Nd, r) {
		return 0, false
	}
	for _, r16 := range unicode.Nd.R16 {
		if rune(r16.Lo) <= r && r <= rune(r16.Hi) {
			return int(r-rune(r16.Lo)) % 10, true
		}
	}
	for _, r32 := range unicode.Nd.R32 {
		if rune(r32.Lo) <= r && r <= rune(r32.Hi) {
			return int(r-rune(r32.Lo)) % 10, true
		}
	}
	return 0, false
}

// normalizeDecimalDigits rewrites every Unicode decimal digit in the
// string to its ASCII form, preserving all other characters.
func normalizeDecimalDigits(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if v, ok := decimalDigitValue(r); ok {
			sb.WriteByte(byte('0' + v))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// trimUnwantedEndChars removes trailing characters that are neither
// letters, numbers nor '#' from the candidate, the same trimming the
// phone number library applies to parse input.
func trimUnwantedEndChars(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '#'
	})
}

// firstRuneAt decodes the code point starting at the given byte offset.
func firstRuneAt(s string, offset int) rune {
	r, _ := utf8.DecodeRuneInString(s[offset:])
	return r
}

// lastRuneBefore decodes the code point immediately preceding the given
// byte offset, stepping back one full UTF-8 sequence.
func lastRuneBefore(s string, offset int) (rune, bool) {
	if offset <= 0 || offset > len(s) {
		return 0, false
	}
	r, size := utf8.DecodeLastRuneInString(s[:offset])
	if size == 0 {
		return 0, false
	}
	return r, true
}
