package matcher

import (
	"math"
	"testing"

	"github.com/nyaruka/phonenumbers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, text, region string, leniency Leniency) []Match {
	t.Helper()
	m := NewWithOptions(text, region, leniency, math.MaxInt32)
	var matches []Match
	for m.HasNext() {
		match, ok := m.Next()
		require.True(t, ok)
		matches = append(matches, match)
	}
	return matches
}

func TestFindSingleNumber(t *testing.T) {
	text := "My number is 650-253-0000."
	matches := collect(t, text, "US", Valid)

	require.Len(t, matches, 1)
	assert.Equal(t, 13, matches[0].Start)
	assert.Equal(t, "650-253-0000", matches[0].Raw)
	assert.Equal(t, 25, matches[0].End())
	assert.Equal(t, "+16502530000",
		phonenumbers.Format(matches[0].Number, phonenumbers.E164))
}

func TestFindMultipleNumbers(t *testing.T) {
	text := "Reach me at (650) 253-0000 x123 or 415-555-1212."
	matches := collect(t, text, "US", Valid)

	require.Len(t, matches, 2)
	assert.Equal(t, "(650) 253-0000 x123", matches[0].Raw)
	assert.Equal(t, "415-555-1212", matches[1].Raw)
	assert.Equal(t, "123", matches[0].Number.GetExtension())
	assert.Greater(t, matches[1].Start, matches[0].End(),
		"matches must not overlap")
}

func TestRejectsNumericNoise(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "trailing latin letters",
			text: "Call 1-800-FLOWERS",
		},
		{
			name: "publication pages",
			text: "VLDB J. 12(3): 211-227 (2003).",
		},
		{
			name: "timestamp with time suffix",
			text: "Meeting at 2012-01-02 08:00 in room 5.",
		},
		{
			name: "slash separated date",
			text: "The event is on 03/10/2011 in the evening.",
		},
		{
			name: "amount with currency",
			text: "The invoice total is $650-253-0000",
		},
		{
			name: "no digits at all",
			text: "Hello, world! No numbers here.",
		},
		{
			name: "empty text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, collect(t, tt.text, "US", Valid))
		})
	}
}

func TestRawStringSlicesText(t *testing.T) {
	text := "numbers: 650-253-0000, +44 20 7946 0958 and 415-555-1212!"
	matches := collect(t, text, "US", Valid)

	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Equal(t, text[m.Start:m.End()], m.Raw)
	}
}

func TestMatchesStrictlyOrdered(t *testing.T) {
	text := "a 650-253-0000 b 415-555-1212 c +44 20 7946 0958 d"
	matches := collect(t, text, "US", Valid)

	require.Len(t, matches, 3)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].Start, matches[i-1].End())
	}
}

func TestEmittedNumberReparses(t *testing.T) {
	text := "Reach me at (650) 253-0000 x123 or 415-555-1212."
	for _, m := range collect(t, text, "US", Valid) {
		reparsed, err := phonenumbers.Parse(m.Raw, "US")
		require.NoError(t, err)
		mt := phonenumbers.IsNumberMatchWithNumbers(reparsed, m.Number)
		assert.GreaterOrEqual(t, int(mt), int(phonenumbers.NSN_MATCH),
			"reparsing %q must yield the emitted number", m.Raw)
	}
}

func TestEmittedNumberIsStripped(t *testing.T) {
	matches := collect(t, "650-253-0000", "US", Valid)
	require.Len(t, matches, 1)

	num := matches[0].Number
	assert.Nil(t, num.RawInput)
	assert.Nil(t, num.CountryCodeSource)
	assert.Nil(t, num.PreferredDomesticCarrierCode)
}

func TestMaxTriesZeroFindsNothing(t *testing.T) {
	m := NewWithOptions("650-253-0000", "US", Valid, 0)
	assert.False(t, m.HasNext())
	_, ok := m.Next()
	assert.False(t, ok)
}

func TestDoneIsTerminal(t *testing.T) {
	m := New("only one: 650-253-0000", "US")

	require.True(t, m.HasNext())
	require.True(t, m.HasNext(), "HasNext must be idempotent")
	_, ok := m.Next()
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		assert.False(t, m.HasNext())
		_, ok := m.Next()
		assert.False(t, ok)
	}
}

func TestPossibleAcceptsInvalidNumbers(t *testing.T) {
	// 211 is not a diallable US area code, so the number is possible in
	// length only.
	text := "fake: 211-456-7890"
	assert.Len(t, collect(t, text, "US", Possible), 1)
	assert.Empty(t, collect(t, text, "US", Valid))
}

func TestLeniencyMonotonicity(t *testing.T) {
	texts := []string{
		"My number is 650-253-0000.",
		"Reach me at (650) 253-0000 x123 or 415-555-1212.",
		"650-2530000",
		"fake: 211-456-7890",
		"Call 1-800-FLOWERS",
	}

	tiers := []Leniency{ExactGrouping, StrictGrouping, Valid, Possible}
	for _, text := range texts {
		var previous map[string]bool
		for _, tier := range tiers {
			current := make(map[string]bool)
			for _, m := range collect(t, text, "US", tier) {
				current[m.Raw] = true
			}
			for raw := range previous {
				assert.True(t, current[raw],
					"%q matched at a stricter tier but not at %v in %q", raw, tier, text)
			}
			previous = current
		}
	}
}

func TestInnerMatchRecovery(t *testing.T) {
	// The candidate swallows the neighbouring zip code; the matcher must
	// recover the number by peeling white-space delimited groups.
	text := "650-253-0000 94043"
	matches := collect(t, text, "US", Valid)

	require.Len(t, matches, 1)
	assert.Equal(t, "650-253-0000", matches[0].Raw)
	assert.Equal(t, 0, matches[0].Start)
}

func TestNationalPrefixRequired(t *testing.T) {
	// London numbers are written with the 0 trunk prefix; a candidate
	// without it did not mean the same dialable number.
	withPrefix := collect(t, "Call 020 7946 0958 today", "GB", Valid)
	require.Len(t, withPrefix, 1)
	assert.Equal(t, "020 7946 0958", withPrefix[0].Raw)
	assert.Equal(t, "+442079460958",
		phonenumbers.Format(withPrefix[0].Number, phonenumbers.E164))

	assert.Empty(t, collect(t, "Call 20 7946 0958 today", "GB", Valid))
}

func TestInternationalFormatNeedsNoPrefix(t *testing.T) {
	matches := collect(t, "Call +44 20 7946 0958 today", "US", Valid)
	require.Len(t, matches, 1)
	assert.Equal(t, "+44 20 7946 0958", matches[0].Raw)
}

func TestUnicodeTextOffsets(t *testing.T) {
	// Multi-byte characters before the number; Start must be a byte
	// offset and the preceding-character check must decode whole runes.
	text := "電話番号は 650-253-0000 です"
	matches := collect(t, text, "US", Valid)

	require.Len(t, matches, 1)
	assert.Equal(t, "650-253-0000", matches[0].Raw)
	assert.Equal(t, text[matches[0].Start:matches[0].End()], matches[0].Raw)
}
