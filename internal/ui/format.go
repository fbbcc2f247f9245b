package ui

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payboard/report"
)

// FormatWon renders a transport amount string as won with digit grouping.
// Unparsable amounts are shown raw so bad data stays visible.
func FormatWon(amount string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	return "₩" + report.FormatThousands(d)
}

// FormatTimestamp renders an ISO-8601 timestamp for table display. The raw
// string is returned unchanged when it does not parse.
func FormatTimestamp(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("2006-01-02 15:04")
}

// TruncateText truncates text to the specified length, adding "..." if truncated
func TruncateText(text string, maxLen int) string {
	if text == "" {
		return ""
	}

	// Clean up newlines and extra spaces
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
