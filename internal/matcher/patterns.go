package matcher

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// limit returns a bounded repetition quantifier for building patterns.
func limit(lower, upper int) string {
	return fmt.Sprintf("{%d,%d}", lower, upper)
}

// Extension patterns for matching, reproduced from the phone number
// library's parsing grammar. The single-character extension symbols are
// only allowed when matching (not parsing), since a lone "x" in running
// text is too ambiguous to treat as an extension marker otherwise.
const capturingExtnDigits = `(\p{Nd}{1,7})`

var extnPatternsForMatching = `;ext=` + capturingExtnDigits +
	`|[ \x{00A0}\t,]*` +
	`(?:e?xt(?:ensi(?:o\x{0301}?|\x{00F3}))?n?|\x{FF45}?\x{FF58}\x{FF54}\x{FF4E}?|` +
	`[x\x{FF58}#\x{FF03}~\x{FF5E}]|int|\x{FF49}\x{FF4E}\x{FF54}|anexo)` +
	`[:\.\x{FF0E}]?[ \x{00A0}\t,-]*` + capturingExtnDigits + `#?` +
	`|[- ]+(\p{Nd}{1,5})#`

// regExps is the compile-once bundle of regular expressions shared by all
// matchers in the process. It is built lazily exactly once; thereafter it
// is read-only.
type regExps struct {
	// Matches strings that look like publication pages, e.g. the
	// "211-227 (2003)" in "VLDB J. 12(3): 211-227 (2003)." is not a
	// telephone number.
	pubPages *regexp.Regexp
	// Matches strings that look like dates using "/" as a separator,
	// e.g. 3/10/2011, 31/10/96 or 08/31/95.
	slashSeparatedDates *regexp.Regexp
	// Matches timestamps like "2012-01-02 08:00". The trailing ":\d\d" is
	// not included here -- that is covered by timeStampsSuffix, applied to
	// the text following the candidate.
	timeStamps       *regexp.Regexp
	timeStampsSuffix *regexp.Regexp
	// Full-match check that brackets within a candidate pair up. An
	// opening bracket at the start may be unmatched (the leading one could
	// have been dropped from the snippet), but subsequent ones must close,
	// and there must be something inside them. No brackets at all is fine.
	matchingBrackets *regexp.Regexp
	// Matches white-space that may indicate the end of a phone number and
	// the start of something else (such as a neighbouring zip-code),
	// continuing over characters that cannot start a phone number.
	groupSeparator *regexp.Regexp
	// Captures the prefix of a candidate up to a likely second number
	// start, so that "555-1234/ x67890" does not swallow its neighbour.
	captureUpToSecondNumberStart *regexp.Regexp
	capturingASCIIDigits         *regexp.Regexp
	// Anchored lead class, used to decide whether a candidate begins with
	// phone-number punctuation.
	leadClassAtStart *regexp.Regexp
	// The principal phone pattern. Capture group 1 is the candidate.
	pattern *regexp.Regexp
}

var (
	regExpsOnce     sync.Once
	regExpsInstance *regExps
)

// patterns returns the process-wide pattern set, compiling it on first use.
func patterns() *regExps {
	regExpsOnce.Do(func() {
		regExpsInstance = newRegExps()
	})
	return regExpsInstance
}

func newRegExps() *regExps {
	const (
		openingParens = `(\[\x{FF08}\x{FF3B}` // ( [ and the fullwidth forms
		closingParens = `)\]\x{FF09}\x{FF3D}`
	)
	nonParens := "[^" + openingParens + closingParens + "]"

	// Limit on the number of pairs of brackets in a candidate.
	bracketPairLimit := limit(0, 3)
	leadingMaybeMatchedBracket := "(?:[" + openingParens + "])?" +
		"(?:" + nonParens + "+[" + closingParens + "])?"
	bracketPairs := "(?:[" + openingParens + "]" + nonParens + "+" +
		"[" + closingParens + "])" + bracketPairLimit

	// The maximum number of digits allowed in a digit-separated block. As
	// we allow all digits in a single block, this accommodates the entire
	// national number and the international country code.
	digitBlockLimit := phonenumbers.MAX_LENGTH_FOR_NSN +
		phonenumbers.MAX_LENGTH_COUNTRY_CODE

	leadLimit := limit(0, 2)
	punctuationLimit := limit(0, 4)
	blockLimit := limit(0, digitBlockLimit)

	punctuation := "[" + phonenumbers.VALID_PUNCTUATION + "]" + punctuationLimit
	digitSequence := `\p{Nd}` + limit(1, digitBlockLimit)

	// Punctuation that may be at the start of a phone number: brackets and
	// plus signs.
	leadClassChars := openingParens + phonenumbers.PLUS_CHARS
	leadClass := "[" + leadClassChars + "]"
	openingPunctuation := "(?:" + leadClass + punctuation + ")"

	return &regExps{
		pubPages: regexp.MustCompile(
			`\d{1,5}-+\d{1,5}\s{0,4}\(\d{1,4}`),
		slashSeparatedDates: regexp.MustCompile(
			`(?:(?:[0-3]?\d/[01]?\d)|(?:[01]?\d/[0-3]?\d))/(?:[12]\d)?\d{2}`),
		timeStamps: regexp.MustCompile(
			`[12]\d{3}[-/]?[01]\d[-/]?[0-3]\d [0-2]\d$`),
		timeStampsSuffix: regexp.MustCompile(`\A:[0-5]\d`),
		matchingBrackets: regexp.MustCompile(
			`\A(?:` + leadingMaybeMatchedBracket + nonParens + "+" +
				bracketPairs + nonParens + `*)\z`),
		groupSeparator: regexp.MustCompile(
			`\p{Z}` + "[^" + leadClassChars + `\p{Nd}]*`),
		captureUpToSecondNumberStart: regexp.MustCompile(`(.*)[\\/] *x`),
		capturingASCIIDigits:         regexp.MustCompile(`(\d+)`),
		leadClassAtStart:             regexp.MustCompile(`\A` + leadClass),
		pattern: regexp.MustCompile(
			"(" + openingPunctuation + leadLimit + digitSequence +
				"(?:" + punctuation + digitSequence + ")" + blockLimit +
				"(?i:(?:" + extnPatternsForMatching + "))?" + ")"),
	}
}
