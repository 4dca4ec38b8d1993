package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	UserID        *string
	EmployeeCode  string
	FullName      string
	Email         string
	MonthlySalary *decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
