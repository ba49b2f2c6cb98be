package matcher

import "github.com/nyaruka/phonenumbers"

// Match is one occurrence of a phone number in a piece of text. It is
// immutable once emitted by a Matcher.
type Match struct {
	// Start is the byte offset of the match in the source text.
	Start int
	// Raw is the literal substring that matched.
	Raw string
	// Number is the parsed phone number. The raw input, country code
	// source and preferred domestic carrier code are cleared before the
	// match is emitted.
	Number *phonenumbers.PhoneNumber
}

// End returns the byte offset just past the match.
func (m Match) End() int {
	return m.Start + len(m.Raw)
}
