package holiday

import (
	"time"

	"cloud.google.com/go/civil"
)

// Holiday is a company-declared non-working date.
type Holiday struct {
	ID        string
	Date      civil.Date
	Name      string
	CreatedAt time.Time
}
