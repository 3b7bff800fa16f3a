package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// styleFor picks a style for a 0-100 score where higher is better.
func styleFor(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return StyleSuccess
	case score >= 40:
		return StyleWarning
	default:
		return StyleError
	}
}

// DocumentationLabel describes a documentation coverage percentage.
func DocumentationLabel(pct int) string {
	switch {
	case pct > 80:
		return "Excellent documentation coverage"
	case pct > 60:
		return "Good documentation coverage"
	default:
		return "Documentation needs improvement"
	}
}

// SecurityLabel describes a security score.
func SecurityLabel(score int) string {
	switch {
	case score > 80:
		return "High security standards"
	case score > 60:
		return "Moderate security"
	default:
		return "Security improvements needed"
	}
}

// Vulnerabilities renders a vulnerability count colored by severity:
// none is green, fewer than five yellow, otherwise red.
func Vulnerabilities(n int) string {
	s := strconv.Itoa(n)
	switch {
	case n == 0:
		return StyleSuccess.Render(s)
	case n < 5:
		return StyleWarning.Render(s)
	default:
		return StyleError.Render(s)
	}
}

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Bytes formats a byte size in binary units, e.g. "3.0 MiB".
func Bytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
