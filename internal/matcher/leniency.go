package matcher

import "fmt"

// Leniency controls how strictly a candidate's formatting must correspond
// to the canonical grouping of the number it parses to. The tiers are
// ordered: every tier above Possible implies the predicates of the tiers
// below it.
type Leniency int

const (
	// Possible accepts every candidate that parses to a possible number,
	// valid or not. No surrounding-context checks are applied.
	Possible Leniency = iota
	// Valid accepts candidates that parse to valid numbers with sensible
	// extension/carrier-code markers, a national prefix where the region
	// requires one, and no adjacent Latin letters or currency symbols.
	Valid
	// StrictGrouping additionally requires the candidate's digit groups
	// not to break up the groups of the canonical format.
	StrictGrouping
	// ExactGrouping additionally requires the candidate's digit groups to
	// equal the groups of the canonical format.
	ExactGrouping
)

func (l Leniency) String() string {
	switch l {
	case Possible:
		return "possible"
	case Valid:
		return "valid"
	case StrictGrouping:
		return "strict"
	case ExactGrouping:
		return "exact"
	}
	return fmt.Sprintf("leniency(%d)", int(l))
}

// ParseLeniency maps the CLI/config spelling of a leniency tier to its
// value.
func ParseLeniency(s string) (Leniency, error) {
	switch s {
	case "possible":
		return Possible, nil
	case "valid":
		return Valid, nil
	case "strict":
		return StrictGrouping, nil
	case "exact":
		return ExactGrouping, nil
	}
	return Valid, fmt.Errorf("unknown leniency %q", s)
}
