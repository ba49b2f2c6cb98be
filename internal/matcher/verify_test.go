package matcher

import (
	"testing"

	"github.com/nyaruka/phonenumbers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, number, region string) *phonenumbers.PhoneNumber {
	t.Helper()
	num, err := phonenumbers.Parse(number, region)
	require.NoError(t, err)
	return num
}

func TestNationalNumberGroups(t *testing.T) {
	num := mustParse(t, "+16502530000", "US")
	assert.Equal(t, []string{"650", "253", "0000"}, nationalNumberGroups(num))
}

func TestStrictGroupingMatcher(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		matches int
	}{
		{name: "canonical grouping", text: "650-253-0000", matches: 1},
		{name: "parenthesized NDC", text: "(650) 253-0000", matches: 1},
		{name: "merged subscriber block", text: "650-2530000", matches: 1},
		{name: "single block", text: "6502530000", matches: 1},
		{name: "regrouped digits", text: "65 0253 0000", matches: 0},
		{name: "two slashes", text: "650/253/0000", matches: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, collect(t, tt.text, "US", StrictGrouping), tt.matches)
		})
	}
}

func TestExactGroupingMatcher(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		matches int
	}{
		{name: "canonical grouping", text: "650-253-0000", matches: 1},
		{name: "parenthesized NDC", text: "(650) 253-0000", matches: 1},
		{name: "single block", text: "6502530000", matches: 1},
		{name: "merged subscriber block", text: "650-2530000", matches: 0},
		{name: "regrouped digits", text: "65 0253 0000", matches: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, collect(t, tt.text, "US", ExactGrouping), tt.matches)
		})
	}
}

func TestAllNumberGroupsRemainGrouped(t *testing.T) {
	num := mustParse(t, "+16502530000", "US")

	tests := []struct {
		candidate string
		want      bool
	}{
		{"650-253-0000", true},
		{"650 253 0000", true},
		{"650-2530000", true}, // subscriber groups merged, none broken apart
		{"65 0253 0000", false},
		{"650-25-30000", false},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, allNumberGroupsRemainGrouped(num, tt.candidate))
		})
	}
}

func TestAllNumberGroupsAreExactlyPresent(t *testing.T) {
	num := mustParse(t, "+16502530000", "US")

	tests := []struct {
		candidate string
		want      bool
	}{
		{"650-253-0000", true},
		{"6502530000", true}, // single block
		{"650-2530000", false},
		{"65-02-53-0000", false},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, allNumberGroupsAreExactlyPresent(num, tt.candidate))
		})
	}
}

func TestContainsOnlyValidXChars(t *testing.T) {
	withExt := mustParse(t, "(650) 253-0000 x123", "US")
	require.Equal(t, "123", withExt.GetExtension())

	assert.True(t, containsOnlyValidXChars(withExt, "(650) 253-0000 x123"))
	assert.False(t, containsOnlyValidXChars(withExt, "(650) 253-0000 x456"),
		"extension digits after the marker must equal the parsed extension")

	plain := mustParse(t, "650-253-0000", "US")
	assert.True(t, containsOnlyValidXChars(plain, "650-253-0000"))
	assert.True(t, containsOnlyValidXChars(plain, "650-253-0000x"),
		"a trailing x is ignored")
}

func TestMoreThanOneSlash(t *testing.T) {
	assert.False(t, containsMoreThanOneSlash("650-253-0000"))
	assert.False(t, containsMoreThanOneSlash("650/2530000"))
	assert.True(t, containsMoreThanOneSlash("650/253/0000"))
}
