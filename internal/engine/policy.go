// Package engine turns raw attendance, leave, holiday and overtime records
// into per-day classifications, monthly aggregates and salary figures.
//
// Everything here is pure: callers load the records, the engine only counts.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Working-day constants. A standard day runs 09:30 to 19:00 less a one hour lunch.
const (
	StandardWorkHours            = 8.5
	LunchBreakHours              = 1.0
	LunchDeductionThresholdHours = 5.0
	OvertimeMultiplier           = 1.5
)

var (
	ErrUnknownWeekday = errors.New("unknown weekday name")
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
)

// Month is a calendar month in the company's local calendar.
type Month struct {
	Year  int
	Month time.Month
}

func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// MonthOf returns the month containing d.
func MonthOf(d civil.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

func (m Month) First() civil.Date {
	return civil.Date{Year: m.Year, Month: m.Month, Day: 1}
}

func (m Month) Last() civil.Date {
	return civil.DateOf(time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC))
}

func (m Month) Days() int {
	return m.Last().Day
}

// Dates lists every date of the month in order.
func (m Month) Dates() []civil.Date {
	dates := make([]civil.Date, 0, m.Days())
	for d := m.First(); !d.After(m.Last()); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

func (m Month) Contains(d civil.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Previous returns the month before m.
func (m Month) Previous() Month {
	return MonthOf(m.First().AddDays(-1))
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Weekday returns the day of week of a calendar date. Civil dates carry no
// zone, so UTC is used only to reach time.Time's weekday arithmetic.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// ParseWeekday maps an English weekday name, in any case, to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.ToLower(wd.String()) == n {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}

// Policy answers calendar questions for one company configuration.
type Policy struct {
	weekend [7]bool
}

// NewPolicy builds a Policy from configured weekend day names. An empty list
// means every day is a working day.
func NewPolicy(weekendDays []string) (Policy, error) {
	var p Policy
	for _, name := range weekendDays {
		wd, err := ParseWeekday(name)
		if err != nil {
			return Policy{}, err
		}
		p.weekend[wd] = true
	}
	return p, nil
}

func (p Policy) IsWeekend(d civil.Date) bool {
	return p.weekend[Weekday(d)]
}

func (p Policy) IsWorkingDay(d civil.Date) bool {
	return !p.IsWeekend(d)
}

// WeekendDays lists configured weekend days from Sunday to Saturday.
func (p Policy) WeekendDays() []time.Weekday {
	var days []time.Weekday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if p.weekend[wd] {
			days = append(days, wd)
		}
	}
	return days
}

// WorkingDaysBetween counts non-weekend dates in [from, to]. Holidays are not
// subtracted.
func (p Policy) WorkingDaysBetween(from, to civil.Date) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDays(1) {
		if !p.IsWeekend(d) {
			n++
		}
	}
	return n
}

// WorkingDaysInMonth is the divisor used for salary rates.
func (p Policy) WorkingDaysInMonth(m Month) int {
	return p.WorkingDaysBetween(m.First(), m.Last())
}
