package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNextOccurrence verifies the core temporal logic of the directory.
// It covers standard dates, boundaries (end of year), and leap year complexities.
func TestNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (Non-Leap Year)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthDate    time.Time
		expectedDate time.Time
		expectedDays int
		desc         string
	}{
		{
			name:         "Birthday in the past (this year)",
			birthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedDays: 200,
			desc:         "Jan 1 is before June 15, so next occurrence is 2026",
		},
		{
			name:         "Birthday in the future (this year)",
			birthDate:    time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedDays: 199,
			desc:         "Dec 31 is after June 15, so next occurrence is 2025",
		},
		{
			name:         "Birthday is Today",
			birthDate:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedDays: 0,
			desc:         "If birthday is today, it counts as the next occurrence",
		},
		{
			name:         "Later month, earlier day",
			birthDate:    time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			expectedDays: 16,
			desc:         "Month and day must be compared as one date, not independently",
		},
		{
			name:         "Same month, earlier day",
			birthDate:    time.Date(1990, 6, 14, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
			expectedDays: 364,
			desc:         "Yesterday rolls to next year",
		},
		{
			name:         "Leapling - Non-Leap Year (Feb 29 -> Mar 1)",
			birthDate:    time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedDays: 259,
			desc:         "Go normalizes non-leap Feb 29 to Mar 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BirthdayFromDate(tt.birthDate)
			assert.Equal(t, tt.expectedDate, b.NextOccurrence(now), tt.desc)
			assert.Equal(t, tt.expectedDays, b.DaysUntil(now), tt.desc)
		})
	}
}

// TestNextOccurrence_LeapYearContext verifies behavior when the *current* year is a leap year.
func TestNextOccurrence_LeapYearContext(t *testing.T) {
	// Reference "Now": Jan 1st, 2024 (Leap Year)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := BirthdayFromDate(time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC))

	expected := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, b.NextOccurrence(now), "In a leap year, the birthday should be Feb 29, not Mar 1")
	assert.Equal(t, 59, b.DaysUntil(now))
}

// TestDaysUntil_IgnoresTimeOfDayAndDST makes sure late evenings and DST
// shifts in local zones still count whole calendar days.
func TestDaysUntil_IgnoresTimeOfDayAndDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// March 29th 2025 23:59 in Paris; DST starts on March 30th.
	now := time.Date(2025, 3, 29, 23, 59, 0, 0, loc)
	b := BirthdayFromDate(time.Date(1990, 3, 31, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 2, b.DaysUntil(now))
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, loc), b.NextOccurrence(now))
}
