package utils

import "strings"

// fuel categories in priority order; first substring match wins
var fuelCategories = []struct {
	needle string
	label  string
}{
	{"etanol", "Etanol"},
	{"gasolina", "Gasolina"},
	{"diesel s10", "Diesel S10"},
	{"diesel s500", "Diesel S500"},
	{"arla", "Arla"},
}

// NormalizeFuel maps a free-text fuel description to the canonical label set.
// Matching is case-insensitive substring; unmatched input is returned trimmed;
// non-string input (values read back from imports or null columns) maps to "".
func NormalizeFuel(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	lower := strings.ToLower(s)
	for _, c := range fuelCategories {
		if strings.Contains(lower, c.needle) {
			return c.label
		}
	}
	return strings.TrimSpace(s)
}
