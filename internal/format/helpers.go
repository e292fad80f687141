package format

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// FmtPayoff renders a payoff with four decimals; exact values stay in the
// .efg file.
func FmtPayoff(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FmtVector renders a parameter vector as "(1, 0.5, 2)".
func FmtVector(v []float64) string {
	s := "("
	for i, f := range v {
		if i > 0 {
			s += ", "
		}
		s += strconv.FormatFloat(f, 'g', -1, 64)
	}
	return s + ")"
}

// FmtDuration formats a duration as "Xm Ys", "Ys" or "Nms" below a second.
func FmtDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	s := int(d.Seconds())
	if s >= 60 {
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	return fmt.Sprintf("%ds", s)
}

// Truncate shortens s to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
