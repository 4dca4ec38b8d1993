package holiday

import (
	"context"

	"cloud.google.com/go/civil"
)

// HolidayRepository - interface for holidays table
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	// GetByDate returns nil without error when the date is not a holiday.
	GetByDate(ctx context.Context, date civil.Date) (*Holiday, error)
	ListByRange(ctx context.Context, from, to civil.Date) ([]Holiday, error)
}
