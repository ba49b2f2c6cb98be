// Package matcher finds telephone numbers embedded in natural-language
// text. Candidates are proposed by a phone-shaped pattern, classified
// against common numeric noise (dates, timestamps, publication pages) and
// verified against the phone number library under a configurable leniency
// tier. Matches are emitted in strictly increasing order and never
// overlap.
package matcher

import (
	"math"

	"github.com/nyaruka/phonenumbers"
)

type state int

const (
	notReady state = iota
	ready
	done
)

// Matcher is a stateful iterator over the phone numbers in a text. It is
// not safe for concurrent use; run one Matcher per goroutine.
type Matcher struct {
	re       *regExps
	text     string
	region   string
	leniency Leniency
	// maxTries caps the number of rejected candidate attempts, including
	// the inner-match peels, bounding worst-case work on adversarial
	// input.
	maxTries    int
	state       state
	lastMatch   *Match
	searchIndex int
}

// New returns a matcher over text using region as the preferred region
// for numbers written without a country code, with Valid leniency and an
// effectively unlimited candidate budget.
func New(text, region string) *Matcher {
	return NewWithOptions(text, region, Valid, math.MaxInt32)
}

// NewWithOptions returns a matcher with an explicit leniency tier and
// candidate budget.
func NewWithOptions(text, region string, leniency Leniency, maxTries int) *Matcher {
	return &Matcher{
		re:       patterns(),
		text:     text,
		region:   region,
		leniency: leniency,
		maxTries: maxTries,
	}
}

// HasNext reports whether another match is available, searching for one
// as a side effect when necessary.
func (m *Matcher) HasNext() bool {
	if m.state == notReady {
		match, ok := m.find(m.searchIndex)
		if !ok {
			m.state = done
		} else {
			m.lastMatch = &match
			m.searchIndex = match.End()
			m.state = ready
		}
	}
	return m.state == ready
}

// Next returns the next match. The second return value is false once the
// text is exhausted.
func (m *Matcher) Next() (Match, bool) {
	if !m.HasNext() {
		return Match{}, false
	}
	match := *m.lastMatch
	m.lastMatch = nil
	m.state = notReady
	return match, true
}

// find walks the text from the given byte offset, feeding each candidate
// produced by the phone pattern through the extraction pipeline until one
// verifies or the budget runs out.
func (m *Matcher) find(index int) (Match, bool) {
	remaining := m.text[index:]
	for m.maxTries > 0 {
		loc := m.re.pattern.FindStringSubmatchIndex(remaining)
		if loc == nil {
			break
		}
		candidate := remaining[loc[2]:loc[3]]
		start := len(m.text) - len(remaining) + loc[2]
		// Check for an extra number at the end and cut the candidate back
		// to the first one.
		if g := m.re.captureUpToSecondNumberStart.FindStringSubmatch(candidate); g != nil {
			candidate = g[1]
		}
		if match, ok := m.extractMatch(candidate, start); ok {
			return match, true
		}
		remaining = remaining[loc[1]:]
		m.maxTries--
	}
	return Match{}, false
}

// extractMatch classifies the candidate against common false positives
// and then attempts whole-candidate verification, falling back to inner
// matches.
func (m *Matcher) extractMatch(candidate string, offset int) (Match, bool) {
	// Skip candidates that are more likely publication page references or
	// slash-separated dates.
	if m.re.pubPages.MatchString(candidate) ||
		m.re.slashSeparatedDates.MatchString(candidate) {
		return Match{}, false
	}
	// Skip potential timestamps: the candidate ends like a date-plus-hour
	// and the text continues with ":mm".
	if m.re.timeStamps.MatchString(candidate) {
		following := m.text[offset+len(candidate):]
		if m.re.timeStampsSuffix.MatchString(following) {
			return Match{}, false
		}
	}

	if match, ok := m.parseAndVerify(candidate, offset); ok {
		return match, true
	}
	return m.extractInnerMatch(candidate, offset)
}

// extractInnerMatch tries removing either the first or last white-space
// delimited group of the candidate. Natural-text boundaries around phone
// numbers are ambiguous; peeling a group is the cheapest way to recover a
// number when the candidate over- or under-shoots.
func (m *Matcher) extractInnerMatch(candidate string, offset int) (Match, bool) {
	loc := m.re.groupSeparator.FindStringIndex(candidate)
	if loc == nil {
		return Match{}, false
	}
	groupStartIndex := loc[1]

	// The first group by itself.
	firstGroupOnly := trimUnwantedEndChars(candidate[:groupStartIndex])
	if match, ok := m.parseAndVerify(firstGroupOnly, offset); ok {
		return match, true
	}
	m.maxTries--

	// The rest of the candidate without the first group.
	withoutFirstGroup := trimUnwantedEndChars(candidate[groupStartIndex:])
	if match, ok := m.parseAndVerify(withoutFirstGroup, offset+groupStartIndex); ok {
		return match, true
	}
	m.maxTries--

	if m.maxTries > 0 {
		// Advance past every remaining separator to locate the last group.
		cursor := groupStartIndex
		for {
			next := m.re.groupSeparator.FindStringIndex(candidate[cursor:])
			if next == nil {
				break
			}
			cursor += next[1]
		}
		withoutLastGroup := trimUnwantedEndChars(candidate[:cursor])
		if withoutLastGroup == firstGroupOnly {
			// Only two groups: "without the last group" is the first group
			// again, which was already tried.
			return Match{}, false
		}
		if match, ok := m.parseAndVerify(withoutLastGroup, offset); ok {
			return match, true
		}
		m.maxTries--
	}
	return Match{}, false
}

// parseAndVerify runs the bracket-balance and surrounding-context checks,
// parses the candidate and verifies it under the configured leniency. On
// success the emitted number is stripped of the extra values kept during
// parsing.
func (m *Matcher) parseAndVerify(candidate string, offset int) (Match, bool) {
	// Reject candidates whose formatting already shows they are not phone
	// numbers, such as unbalanced brackets.
	if !m.re.matchingBrackets.MatchString(candidate) {
		return Match{}, false
	}

	// At Valid or stricter we also skip numbers surrounded by Latin
	// alphabetic characters, to skip cases like abc8005001234 or
	// 8005001234def.
	if m.leniency >= Valid {
		if offset > 0 && !m.re.leadClassAtStart.MatchString(candidate) {
			if prev, ok := lastRuneBefore(m.text, offset); ok {
				if isInvalidPunctuationSymbol(prev) || isLatinLetter(prev) {
					return Match{}, false
				}
			}
		}
		lastCharIndex := offset + len(candidate)
		if lastCharIndex < len(m.text) {
			next := firstRuneAt(m.text, lastCharIndex)
			if isInvalidPunctuationSymbol(next) || isLatinLetter(next) {
				return Match{}, false
			}
		}
	}

	number, err := phonenumbers.ParseAndKeepRawInput(candidate, m.region)
	if err != nil {
		return Match{}, false
	}
	if !m.verify(number, candidate) {
		return Match{}, false
	}

	// The values kept by ParseAndKeepRawInput are consumed by the
	// verifier but are not part of the emitted match.
	number.CountryCodeSource = nil
	number.PreferredDomesticCarrierCode = nil
	number.RawInput = nil
	return Match{Start: offset, Raw: candidate, Number: number}, true
}
