package company

import (
	"time"
)

// Settings is the single company-wide policy row. Clock values are "HH:MM".
type Settings struct {
	ID            string
	WeekendDays   []string
	MarkFromTime  string
	WorkStartTime string
	WorkEndTime   string
	Timezone      string
	UpdatedAt     time.Time
}

// Location resolves Timezone, falling back when it is empty or unknown.
func (s Settings) Location(fallback *time.Location) *time.Location {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}
