package money

import "fmt"

// Format renders signed cents as a major.minor string, e.g. -123.45.
// No float arithmetic, so large values stay exact.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
