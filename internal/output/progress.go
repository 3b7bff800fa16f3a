package output

import (
	"fmt"
	"strings"
)

// ruleWidth is the width of section rules.
var ruleWidth = 66

// SetWidth sets the width of section rules. Values below 20 are ignored.
func SetWidth(w int) {
	if w >= 20 {
		ruleWidth = w
	}
}

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	return scaleBar(score, 100, width)
}

// ScaleBar renders a bar for a value on a 0..limit scale where lower is
// better, such as complexity out of 10.
func ScaleBar(value, limit float64, width int) string {
	if limit <= 0 {
		limit = 1
	}
	b := bar(value/limit, width)
	return fmt.Sprintf("%s %s", styleFor(100-100*value/limit).Render(b),
		StyleMuted.Render(fmt.Sprintf("%.0f/%.0f", value, limit)))
}

func scaleBar(score, limit float64, width int) string {
	return fmt.Sprintf("%s %s", styleFor(score).Render(bar(score/limit, width)),
		StyleMuted.Render(fmt.Sprintf("%.0f/%.0f", score, limit)))
}

func bar(fraction float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	var arrow string
	if delta > 0 {
		arrow = fmt.Sprintf("▲ +%.0f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.0f", delta)
	}

	if (delta > 0) == higherIsBetter {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section renders a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", ruleWidth))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
