package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, Month{2024, time.February}, m)

	_, err = ParseMonth("2024-13")
	assert.Error(t, err)
	_, err = ParseMonth("Feb 2024")
	assert.Error(t, err)
	_, err = ParseMonth("")
	assert.Error(t, err)
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "2024-02", Month{2024, time.February}.String())
	assert.Equal(t, "2024-12", Month{2024, time.December}.String())
	assert.Equal(t, "0999-01", Month{999, time.January}.String())
}

func TestMonthFirstDay(t *testing.T) {
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Month{2024, time.February}.FirstDay())
}

func TestMonthNext_YearRollover(t *testing.T) {
	assert.Equal(t, Month{2025, time.January}, Month{2024, time.December}.Next())
	assert.Equal(t, Month{2024, time.March}, Month{2024, time.February}.Next())
}

func TestMonthOf_IgnoresDayAndTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	assert.Equal(t, Month{2024, time.January}, MonthOf(time.Date(2024, time.January, 31, 23, 0, 0, 0, loc)))
}

func TestMonthBefore(t *testing.T) {
	assert.True(t, Month{2023, time.December}.Before(Month{2024, time.January}))
	assert.False(t, Month{2024, time.January}.Before(Month{2024, time.January}))
	assert.False(t, Month{2024, time.February}.Before(Month{2024, time.January}))
}
