package twi

import "strconv"

// formatNumber mirrors bytecode.formatNumber's rusty-lox-derived behavior:
// integral values print without a trailing ".0". twi has no dependency on
// the bytecode package, so this is a small, deliberate duplication rather
// than a shared helper.
func formatNumber(f float64) string {
	const maxIntegral = 1e15
	if f == float64(int64(f)) && f > -maxIntegral && f < maxIntegral {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
