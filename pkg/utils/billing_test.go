package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "SF-42-20260301103000", FormatInvoiceNumber("SF", 42, ts))
	assert.Equal(t, "EP-7-20260301103000", FormatInvoiceNumber("EP", 7, ts))
	assert.Equal(t, "SF-42-20260301103000-3", SuffixInvoiceNumber(FormatInvoiceNumber("SF", 42, ts), 3))
}

func TestCentsFromFloat(t *testing.T) {
	assert.Equal(t, int64(150000), CentsFromFloat(1500))
	assert.Equal(t, int64(1250), CentsFromFloat(12.50))
	assert.Equal(t, int64(1), CentsFromFloat(0.01))
	// floating point representation must not lose a cent
	assert.Equal(t, int64(2999), CentsFromFloat(29.99))
	assert.Equal(t, int64(0), CentsFromFloat(0))
}

func TestParseFlexibleDate(t *testing.T) {
	d, err := ParseFlexibleDate("2026-04-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseFlexibleDate("2026-04-15 18:30:00")
	require.NoError(t, err)
	assert.Equal(t, 18, d.Hour())

	d, err = ParseFlexibleDate("2026-04-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 30, d.Minute())

	_, err = ParseFlexibleDate("15/04/2026")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.December, d.Month())

	_, err = ParseDate("2026-13-01")
	require.Error(t, err)
}
