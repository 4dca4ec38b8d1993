package holiday

import (
	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`

	ParsedDate civil.Date `json:"-"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	r.ParsedDate = date
	return nil
}

type HolidayResponse struct {
	ID   string     `json:"id"`
	Date civil.Date `json:"date"`
	Name string     `json:"name"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{ID: h.ID, Date: h.Date, Name: h.Name}
}
