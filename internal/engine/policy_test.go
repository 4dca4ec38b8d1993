package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	t.Run("case insensitive names", func(t *testing.T) {
		p, err := NewPolicy([]string{"saturday", " SUNDAY "})
		require.NoError(t, err)
		assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, p.WeekendDays())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := NewPolicy([]string{"Caturday"})
		assert.ErrorIs(t, err, ErrUnknownWeekday)
	})

	t.Run("empty means no weekend", func(t *testing.T) {
		p, err := NewPolicy(nil)
		require.NoError(t, err)
		assert.Equal(t, 31, p.WorkingDaysInMonth(january2025))
	})
}

func TestPolicy_IsWeekend(t *testing.T) {
	p := satSun(t)

	// 2025-01-01 is a Wednesday
	assert.False(t, p.IsWeekend(date(2025, time.January, 1)))
	assert.True(t, p.IsWeekend(date(2025, time.January, 4)))
	assert.True(t, p.IsWeekend(date(2025, time.January, 5)))
	assert.False(t, p.IsWeekend(date(2025, time.January, 6)))
}

func TestPolicy_WorkingDaysInMonth(t *testing.T) {
	p := satSun(t)

	tests := []struct {
		name  string
		month Month
		want  int
	}{
		{"january 2025", Month{2025, time.January}, 23},
		{"february 2025", Month{2025, time.February}, 20},
		{"february 2024 leap", Month{2024, time.February}, 21},
		{"june 2025", Month{2025, time.June}, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.WorkingDaysInMonth(tt.month))
		})
	}

	fridayOnly, err := NewPolicy([]string{"Friday"})
	require.NoError(t, err)
	// January 2025 has five Fridays
	assert.Equal(t, 26, fridayOnly.WorkingDaysInMonth(january2025))
}

func TestMonth(t *testing.T) {
	m, err := NewMonth(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 1), m.First())
	assert.Equal(t, date(2024, time.February, 29), m.Last())
	assert.Equal(t, 29, m.Days())
	assert.Len(t, m.Dates(), 29)
	assert.Equal(t, "2024-02", m.String())
	assert.True(t, m.Contains(date(2024, time.February, 10)))
	assert.False(t, m.Contains(date(2024, time.March, 1)))

	dec := Month{2024, time.December}
	assert.Equal(t, date(2024, time.December, 31), dec.Last())

	assert.Equal(t, Month{2024, time.January}, m.Previous())
	assert.Equal(t, Month{2023, time.December}, Month{2024, time.January}.Previous())

	_, err = NewMonth(2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestWeekdayIgnoresLocalZone(t *testing.T) {
	d := date(2025, time.March, 30)
	assert.Equal(t, time.Sunday, Weekday(d))

	// Round trip through a far-east zone keeps the same calendar day.
	loc := time.FixedZone("UTC+14", 14*60*60)
	assert.Equal(t, d, MonthOf(d).First().AddDays(29))
	assert.Equal(t, time.Sunday, d.In(loc).Weekday())
}
