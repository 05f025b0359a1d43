package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid ISO date", func(t *testing.T) {
		d, err := ParseDate("2025-12-01")
		require.NoError(t, err)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.December, d.Month())
		assert.Equal(t, 1, d.Day())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, s := range []string{"01-12-2025", "2025/12/01", "2025-12-1", "Dec 1 2025", ""} {
			_, err := ParseDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		_, err := ParseDate("2025-02-30")
		assert.Error(t, err)
	})
}

func TestExpandRange(t *testing.T) {
	mustDate := func(s string) time.Time {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}

	t.Run("multi day range includes both endpoints", func(t *testing.T) {
		days := ExpandRange(mustDate("2025-12-01"), mustDate("2025-12-03"))
		assert.Equal(t, []string{"2025-12-01", "2025-12-02", "2025-12-03"}, days)
	})

	t.Run("single day range", func(t *testing.T) {
		days := ExpandRange(mustDate("2025-12-01"), mustDate("2025-12-01"))
		assert.Equal(t, []string{"2025-12-01"}, days)
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		days := ExpandRange(mustDate("2025-12-30"), mustDate("2026-01-02"))
		assert.Equal(t, []string{"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02"}, days)
	})

	t.Run("handles leap day", func(t *testing.T) {
		days := ExpandRange(mustDate("2024-02-28"), mustDate("2024-03-01"))
		assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, days)
	})
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	ts := time.Date(2025, 12, 1, 19, 30, 0, 0, loc)
	assert.Equal(t, "2025-12-01T12:30:00Z", FormatTimestamp(ts))
}
