package enums

import "fmt"

// PriceBracket names one of the fixed listing price ranges.
type PriceBracket string

const (
	PriceBracketUnder50  PriceBracket = "under-50"
	PriceBracket50To100  PriceBracket = "50-100"
	PriceBracket100To150 PriceBracket = "100-150"
	PriceBracketOver150  PriceBracket = "over-150"
)

var validPriceBrackets = []PriceBracket{
	PriceBracketUnder50,
	PriceBracket50To100,
	PriceBracket100To150,
	PriceBracketOver150,
}

// String implements fmt.Stringer.
func (p PriceBracket) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceBracket.
func (p PriceBracket) IsValid() bool {
	for _, candidate := range validPriceBrackets {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceBracket converts raw input into a PriceBracket.
func ParsePriceBracket(value string) (PriceBracket, error) {
	for _, candidate := range validPriceBrackets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price bracket %q", value)
}
