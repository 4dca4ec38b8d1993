package company

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

type UpdateSettingsRequest struct {
	WeekendDays   []string `json:"weekend_days"`
	MarkFromTime  string   `json:"mark_from_time"`
	WorkStartTime string   `json:"work_start_time"`
	WorkEndTime   string   `json:"work_end_time"`
	Timezone      string   `json:"timezone"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	seen := make(map[string]bool)
	for _, day := range r.WeekendDays {
		name := strings.ToLower(strings.TrimSpace(day))
		if !validator.IsInSlice(name, weekdayNames) {
			errs = append(errs, validator.ValidationError{
				Field:   "weekend_days",
				Message: "unknown weekday name: " + day,
			})
			continue
		}
		if seen[name] {
			errs = append(errs, validator.ValidationError{
				Field:   "weekend_days",
				Message: "duplicate weekday: " + day,
			})
		}
		seen[name] = true
	}
	if len(seen) == len(weekdayNames) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekend_days",
			Message: "at least one working day is required",
		})
	}

	if _, ok := validator.IsValidClock(r.MarkFromTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "mark_from_time",
			Message: "mark_from_time must be in HH:MM format",
		})
	}
	start, startOK := validator.IsValidClock(r.WorkStartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "work_start_time",
			Message: "work_start_time must be in HH:MM format",
		})
	}
	end, endOK := validator.IsValidClock(r.WorkEndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end_time",
			Message: "work_end_time must be in HH:MM format",
		})
	}
	if startOK && endOK && end <= start {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end_time",
			Message: "work_end_time must be after work_start_time",
		})
	}

	if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	WeekendDays   []string  `json:"weekend_days"`
	MarkFromTime  string    `json:"mark_from_time"`
	WorkStartTime string    `json:"work_start_time"`
	WorkEndTime   string    `json:"work_end_time"`
	Timezone      string    `json:"timezone"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	weekend := s.WeekendDays
	if weekend == nil {
		weekend = []string{}
	}
	return SettingsResponse{
		WeekendDays:   weekend,
		MarkFromTime:  s.MarkFromTime,
		WorkStartTime: s.WorkStartTime,
		WorkEndTime:   s.WorkEndTime,
		Timezone:      s.Timezone,
		UpdatedAt:     s.UpdatedAt,
	}
}
