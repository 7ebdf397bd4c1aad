package transcribe

import "fmt"

// FormatTimestamp renders a second offset as HH:MM:SS with integer
// truncation. There is no day rollover: offsets of 24 hours or more simply
// produce an hour field above 23.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
