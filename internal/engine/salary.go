package engine

import (
	"github.com/shopspring/decimal"
)

var (
	standardHours      = decimal.NewFromFloat(StandardWorkHours)
	overtimeMultiplier = decimal.NewFromFloat(OvertimeMultiplier)
)

// SalaryInput carries what salary derivation needs from an aggregate.
type SalaryInput struct {
	MonthlySalary *decimal.Decimal
	WorkingDays   int
	EffectiveDays float64
	// OvertimeHours holds one value per approved overtime entry.
	OvertimeHours []float64
}

// Salary holds derived money amounts at full precision. Round only when
// presenting them.
type Salary struct {
	DailyRate               decimal.Decimal
	HourlyRate              decimal.Decimal
	OvertimeHourlyRate      decimal.Decimal
	CalculatedSalary        decimal.Decimal
	OvertimePay             decimal.Decimal
	TotalSalaryWithOvertime decimal.Decimal
}

// CalculateSalary prorates the monthly salary by effective days and adds
// overtime pay. A missing salary or a month without working days yields zeros.
func CalculateSalary(in SalaryInput) Salary {
	if in.MonthlySalary == nil || in.WorkingDays <= 0 {
		return Salary{
			DailyRate:               decimal.Zero,
			HourlyRate:              decimal.Zero,
			OvertimeHourlyRate:      decimal.Zero,
			CalculatedSalary:        decimal.Zero,
			OvertimePay:             decimal.Zero,
			TotalSalaryWithOvertime: decimal.Zero,
		}
	}

	monthly := *in.MonthlySalary
	workingDays := decimal.NewFromInt(int64(in.WorkingDays))

	daily := monthly.Div(workingDays)
	calculated := monthly.Mul(decimal.NewFromFloat(in.EffectiveDays)).Div(workingDays)
	overtimePay := OvertimePay(daily, in.OvertimeHours)

	return Salary{
		DailyRate:               daily,
		HourlyRate:              daily.Div(standardHours),
		OvertimeHourlyRate:      OvertimeHourlyRate(daily),
		CalculatedSalary:        calculated,
		OvertimePay:             overtimePay,
		TotalSalaryWithOvertime: calculated.Add(overtimePay),
	}
}

// OvertimeHourlyRate is the daily rate spread over a standard day at time and a half.
func OvertimeHourlyRate(dailyRate decimal.Decimal) decimal.Decimal {
	return dailyRate.Div(standardHours).Mul(overtimeMultiplier)
}

// OvertimePay sums rate times hours over each overtime entry.
func OvertimePay(dailyRate decimal.Decimal, hours []float64) decimal.Decimal {
	rate := OvertimeHourlyRate(dailyRate)
	total := decimal.Zero
	for _, h := range hours {
		total = total.Add(rate.Mul(decimal.NewFromFloat(h)))
	}
	return total
}
