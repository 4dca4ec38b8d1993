package validator

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts only version 7 identifiers, which is what the service issues.
func IsValidUUID(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil || len(s) != 36 {
		return false
	}
	return id.Version() == 7
}

// Date validation
func IsValidDate(dateStr string) (civil.Date, bool) {
	date, err := civil.ParseDate(dateStr)
	return date, err == nil
}

// IsValidClock checks a 24h "HH:MM" wall-clock value.
func IsValidClock(s string) (time.Duration, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

// IsValidTimezone checks an IANA zone name such as "Asia/Jakarta".
func IsValidTimezone(name string) bool {
	if IsEmpty(name) {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// ValidatePeriod checks a calendar month/year pair used by monthly queries.
func ValidatePeriod(month, year int) ValidationErrors {
	var errs ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if year < 1970 || year > 9999 {
		errs = append(errs, ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}
	return errs
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}
