package matcher

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// verify applies the predicates of the configured leniency tier to a
// parsed number and the candidate it was parsed from.
func (m *Matcher) verify(number *phonenumbers.PhoneNumber, candidate string) bool {
	switch m.leniency {
	case Possible:
		return phonenumbers.IsPossibleNumber(number)
	case Valid:
		return phonenumbers.IsValidNumber(number) &&
			containsOnlyValidXChars(number, candidate) &&
			isNationalPrefixPresentIfRequired(number)
	case StrictGrouping:
		return phonenumbers.IsValidNumber(number) &&
			containsOnlyValidXChars(number, candidate) &&
			!containsMoreThanOneSlash(candidate) &&
			isNationalPrefixPresentIfRequired(number) &&
			allNumberGroupsRemainGrouped(number, candidate)
	case ExactGrouping:
		return phonenumbers.IsValidNumber(number) &&
			containsOnlyValidXChars(number, candidate) &&
			!containsMoreThanOneSlash(candidate) &&
			isNationalPrefixPresentIfRequired(number) &&
			allNumberGroupsAreExactlyPresent(number, candidate)
	}
	// Unknown tier is an implementation bug; never match.
	return false
}

func containsMoreThanOneSlash(candidate string) bool {
	return strings.Count(candidate, "/") >= 2
}

// containsOnlyValidXChars checks every ASCII 'x'/'X' in the candidate.
// A doubled x marks a carrier code preceding the national significant
// number; a single x marks the extension. A trailing x as the very last
// character is ignored.
func containsOnlyValidXChars(number *phonenumbers.PhoneNumber, candidate string) bool {
	for i := 0; i < len(candidate)-1; i++ {
		c := candidate[i]
		if c != 'x' && c != 'X' {
			continue
		}
		next := candidate[i+1]
		if next == 'x' || next == 'X' {
			// Carrier-code case: the x's precede the national significant
			// number.
			i++
			if phonenumbers.IsNumberMatchWithOneNumber(number, candidate[i:]) !=
				phonenumbers.NSN_MATCH {
				return false
			}
		} else if phonenumbers.NormalizeDigitsOnly(candidate[i:]) != number.GetExtension() {
			return false
		}
	}
	return true
}

// isNationalPrefixPresentIfRequired rejects numbers that were parsed
// against the default region but were written without the national
// prefix that region applies when formatting. Numbers written in
// international format carry their own country code and always pass, as
// do numbers for regions that format without a prefix.
func isNationalPrefixPresentIfRequired(number *phonenumbers.PhoneNumber) bool {
	if number.GetCountryCodeSource() != phonenumbers.PhoneNumber_FROM_DEFAULT_COUNTRY {
		return true
	}
	nsn := phonenumbers.GetNationalSignificantNumber(number)
	nationalDigits := phonenumbers.NormalizeDigitsOnly(
		phonenumbers.Format(number, phonenumbers.NATIONAL))
	// The national format ends with the extension, if any; drop its digits
	// so that only the prefix and the national significant number remain.
	nationalDigits = strings.TrimSuffix(nationalDigits, number.GetExtension())
	if nationalDigits == nsn || !strings.HasSuffix(nationalDigits, nsn) {
		// Either no prefix is applied when formatting this number, or the
		// formatting rule rewrites the digits entirely; in both cases
		// there is nothing to require of the raw input.
		return true
	}
	prefix := nationalDigits[:len(nationalDigits)-len(nsn)]
	rawDigits := phonenumbers.NormalizeDigitsOnly(number.GetRawInput())
	return strings.HasPrefix(rawDigits, prefix)
}

// nationalNumberGroups formats the number in RFC3966 form, +CC-DG-DG-DG
// with an optional ;ext= suffix, and returns the national digit groups.
func nationalNumberGroups(number *phonenumbers.PhoneNumber) []string {
	rfc3966 := phonenumbers.Format(number, phonenumbers.RFC3966)
	// Strip the extension, if any, before splitting into groups.
	if i := strings.IndexByte(rfc3966, ';'); i >= 0 {
		rfc3966 = rfc3966[:i]
	}
	// The country code is followed by the first '-'.
	start := strings.IndexByte(rfc3966, '-') + 1
	return strings.Split(rfc3966[start:], "-")
}

// allNumberGroupsRemainGrouped checks that no group of the canonical
// format is broken apart by formatting in the candidate. Tuning of this
// check has been limited to NANPA regions.
func allNumberGroupsRemainGrouped(number *phonenumbers.PhoneNumber, candidate string) bool {
	normalized := normalizeDecimalDigits(candidate)
	groups := nationalNumberGroups(number)
	from := 0
	for i, group := range groups {
		idx := strings.Index(normalized[from:], group)
		if idx < 0 {
			return false
		}
		from += idx + len(group)
		if i == 0 && from < len(normalized) {
			// Right after the NDC. If a digit follows immediately there is
			// no separator after the NDC, and we only accept the candidate
			// when it has no formatting at all, except for an extension.
			if normalized[from] >= '0' && normalized[from] <= '9' {
				nsn := phonenumbers.GetNationalSignificantNumber(number)
				return strings.HasPrefix(normalized[from-len(group):], nsn)
			}
		}
	}
	// Make sure the extension was not already used to match the last
	// group of the subscriber number. The extension cannot have
	// formatting between its digits.
	return strings.Contains(normalized[from:], number.GetExtension())
}

// allNumberGroupsAreExactlyPresent checks that the digit groups of the
// candidate equal the groups of the canonical format. Tuning of this
// check has been limited to NANPA regions.
func allNumberGroupsAreExactlyPresent(number *phonenumbers.PhoneNumber, candidate string) bool {
	normalized := normalizeDecimalDigits(candidate)
	candidateGroups := patterns().capturingASCIIDigits.FindAllString(normalized, -1)
	if len(candidateGroups) == 0 {
		return false
	}

	// The last candidate group, skipping the extension if one was parsed.
	idx := len(candidateGroups) - 1
	if number.GetExtension() != "" {
		idx = len(candidateGroups) - 2
	}

	// A national significant number formatted as a single block is fine.
	// Contains rather than equals, since the block may carry a national
	// prefix or the country code itself.
	nsn := phonenumbers.GetNationalSignificantNumber(number)
	if len(candidateGroups) == 1 ||
		(idx >= 0 && strings.Contains(candidateGroups[idx], nsn)) {
		return true
	}

	// Walk the formatted groups from the end in lock-step with the
	// candidate groups, excluding the first formatted group.
	groups := nationalNumberGroups(number)
	for gi := len(groups) - 1; gi > 0 && idx >= 0; gi, idx = gi-1, idx-1 {
		if candidateGroups[idx] != groups[gi] {
			return false
		}
	}
	// The first group may carry a national prefix, so only require the
	// candidate group to end with it.
	return idx >= 0 && strings.HasSuffix(candidateGroups[idx], groups[0])
}
