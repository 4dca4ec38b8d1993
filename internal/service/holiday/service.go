package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{holidayRepo: holidayRepo}
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	if errs := validator.ValidatePeriod(1, year); len(errs) > 0 {
		return nil, errs
	}

	from := civil.Date{Year: year, Month: time.January, Day: 1}
	to := civil.Date{Year: year, Month: time.December, Day: 31}
	holidays, err := s.holidayRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	resp := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, holiday.NewHolidayResponse(h))
	}
	return resp, nil
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Date: req.ParsedDate,
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayExists) {
			return holiday.HolidayResponse{}, err
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	slog.InfoContext(ctx, "holiday created", "holiday_id", created.ID, "date", created.Date.String())
	return holiday.NewHolidayResponse(created), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "holiday id is required"}}
	}
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	slog.InfoContext(ctx, "holiday deleted", "holiday_id", id)
	return nil
}
