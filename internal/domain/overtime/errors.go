package overtime

import "errors"

var (
	ErrOvertimeNotFound         = errors.New("overtime request not found")
	ErrOvertimeAlreadyProcessed = errors.New("overtime request already processed")
	ErrOvertimeOnWorkingDay     = errors.New("overtime can only be submitted for weekends or holidays")
	ErrOvertimeAlreadyExists    = errors.New("overtime request already exists for this date")
)
