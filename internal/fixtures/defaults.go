// Package fixtures holds the defaults a fresh installation is seeded with.
package fixtures

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
)

func strPtr(s string) *string { return &s }

// DefaultSettings is a Monday to Friday week, marking from 07:00 with the
// standard 09:30 to 19:00 working day.
func DefaultSettings(timezone string) company.Settings {
	return company.Settings{
		WeekendDays:   []string{"saturday", "sunday"},
		MarkFromTime:  "07:00",
		WorkStartTime: "09:30",
		WorkEndTime:   "19:00",
		Timezone:      timezone,
	}
}

// GetDefaultLeaveTypes returns the leave types seeded when none exist.
// Only unpaid leave reduces salary. Sick and unpaid leave carry no quota.
func GetDefaultLeaveTypes() []leave.LeaveType {
	return []leave.LeaveType{
		{
			Name:         "Annual Leave",
			Code:         strPtr("ANNUAL"),
			Description:  strPtr("Paid annual leave"),
			IsPaid:       true,
			IsActive:     true,
			HasQuota:     true,
			DefaultQuota: 12,
		},
		{
			Name:        "Sick Leave",
			Code:        strPtr("SICK"),
			Description: strPtr("Paid sick leave, usually backed by a doctor's note"),
			IsPaid:      true,
			IsActive:    true,
		},
		{
			Name:         "Marriage Leave",
			Code:         strPtr("MARRIAGE"),
			Description:  strPtr("Paid leave for the employee's own wedding"),
			IsPaid:       true,
			IsActive:     true,
			HasQuota:     true,
			DefaultQuota: 3,
		},
		{
			Name:         "Maternity Leave",
			Code:         strPtr("MATERNITY"),
			Description:  strPtr("Paid leave before and after childbirth"),
			IsPaid:       true,
			IsActive:     true,
			HasQuota:     true,
			DefaultQuota: 90,
		},
		{
			Name:         "Paternity Leave",
			Code:         strPtr("PATERNITY"),
			Description:  strPtr("Paid leave when the employee's partner gives birth"),
			IsPaid:       true,
			IsActive:     true,
			HasQuota:     true,
			DefaultQuota: 2,
		},
		{
			Name:         "Bereavement Leave",
			Code:         strPtr("BEREAVEMENT"),
			Description:  strPtr("Paid leave on the death of a family member"),
			IsPaid:       true,
			IsActive:     true,
			HasQuota:     true,
			DefaultQuota: 2,
		},
		{
			Name:        "Unpaid Leave",
			Code:        strPtr("UNPAID"),
			Description: strPtr("Leave without pay, deducted from the monthly salary"),
			IsPaid:      false,
			IsActive:    true,
		},
	}
}
