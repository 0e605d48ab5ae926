package utils

import (
	"fmt"
	"math"
	"time"
)

const invoiceTimestampLayout = "20060102150405"

// FormatInvoiceNumber builds the deterministic invoice number template
// {PREFIX}-{memberID}-{timestamp}, with second granularity
func FormatInvoiceNumber(prefix string, memberID uint, ts time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, memberID, ts.Format(invoiceTimestampLayout))
}

// SuffixInvoiceNumber appends a collision-resolution suffix to a candidate
// invoice number
func SuffixInvoiceNumber(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}

// CentsFromFloat converts a decimal amount to cents
func CentsFromFloat(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ParseFlexibleDate parses a bare date (normalized to midnight) or a full
// timestamp, which is what the delivery endpoints accept.
func ParseFlexibleDate(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// ParseDate parses a bare yyyy-mm-dd date
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
