package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRIPMATE_BACK-END/internal/dto"
	"TRIPMATE_BACK-END/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestParseRanges(t *testing.T) {
	t.Run("empty input is a valid clear", func(t *testing.T) {
		parsed, err := parseRanges(nil)
		require.NoError(t, err)
		assert.Empty(t, parsed)
	})

	t.Run("valid ranges parse in order", func(t *testing.T) {
		parsed, err := parseRanges([]dto.DateRange{
			{StartDate: "2025-12-01", EndDate: "2025-12-03"},
			{StartDate: "2025-12-10", EndDate: "2025-12-10"},
		})
		require.NoError(t, err)
		require.Len(t, parsed, 2)
		assert.Equal(t, day(t, "2025-12-01"), parsed[0].start)
		assert.Equal(t, day(t, "2025-12-10"), parsed[1].end)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := parseRanges([]dto.DateRange{{StartDate: "2025-12-09", EndDate: "2025-12-05"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be after")
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		_, err := parseRanges([]dto.DateRange{{StartDate: "01-12-2025", EndDate: "2025-12-05"}})
		assert.Error(t, err)
	})

	t.Run("full year range allowed", func(t *testing.T) {
		_, err := parseRanges([]dto.DateRange{{StartDate: "2025-01-01", EndDate: "2025-12-31"}})
		assert.NoError(t, err)
	})

	t.Run("range beyond a year rejected", func(t *testing.T) {
		// 2024 is a leap year, so this range covers 366 days.
		_, err := parseRanges([]dto.DateRange{{StartDate: "2024-01-01", EndDate: "2024-12-31"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")

		_, err = parseRanges([]dto.DateRange{{StartDate: "0001-01-01", EndDate: "9999-12-31"}})
		assert.Error(t, err)
	})
}

func TestBuildHeatmap(t *testing.T) {
	userA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	userB := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("empty input gives empty heatmap", func(t *testing.T) {
		data, dates := BuildHeatmap(nil)
		assert.Empty(t, data)
		assert.Empty(t, dates)
	})

	t.Run("overlapping users share a day", func(t *testing.T) {
		ranges := []models.AvailabilityRange{
			{UserID: userA, StartDate: day(t, "2025-12-01"), EndDate: day(t, "2025-12-02")},
			{UserID: userB, StartDate: day(t, "2025-12-02"), EndDate: day(t, "2025-12-03")},
		}

		data, dates := BuildHeatmap(ranges)

		assert.Equal(t, []string{"2025-12-01", "2025-12-02", "2025-12-03"}, dates)
		assert.Equal(t, []string{userA.String()}, data["2025-12-01"])
		assert.Equal(t, []string{userA.String(), userB.String()}, data["2025-12-02"])
		assert.Equal(t, []string{userB.String()}, data["2025-12-03"])
	})

	t.Run("single day range counts both endpoints once", func(t *testing.T) {
		ranges := []models.AvailabilityRange{
			{UserID: userA, StartDate: day(t, "2025-12-05"), EndDate: day(t, "2025-12-05")},
		}

		data, dates := BuildHeatmap(ranges)

		require.Len(t, dates, 1)
		assert.Equal(t, []string{userA.String()}, data["2025-12-05"])
	})

	t.Run("overlapping ranges from the same user count once per day", func(t *testing.T) {
		ranges := []models.AvailabilityRange{
			{UserID: userA, StartDate: day(t, "2025-12-01"), EndDate: day(t, "2025-12-03")},
			{UserID: userA, StartDate: day(t, "2025-12-02"), EndDate: day(t, "2025-12-04")},
		}

		data, dates := BuildHeatmap(ranges)

		assert.Equal(t, []string{"2025-12-01", "2025-12-02", "2025-12-03", "2025-12-04"}, dates)
		for _, d := range dates {
			assert.Equal(t, []string{userA.String()}, data[d], "day %s", d)
		}
	})

	t.Run("dates span month boundaries in order", func(t *testing.T) {
		ranges := []models.AvailabilityRange{
			{UserID: userA, StartDate: day(t, "2025-11-30"), EndDate: day(t, "2025-12-01")},
		}

		_, dates := BuildHeatmap(ranges)

		assert.Equal(t, []string{"2025-11-30", "2025-12-01"}, dates)
	})
}
