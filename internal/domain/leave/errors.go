package leave

import "errors"

var (
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveTypeInactive            = errors.New("leave type is inactive")
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeave             = errors.New("leave request overlaps an existing request")
	ErrNoWorkingDays                = errors.New("leave range contains no working days")
	ErrQuotaNotFound                = errors.New("leave quota not found")
	ErrInsufficientQuota            = errors.New("insufficient leave quota")
	ErrQuotaBelowCommitted          = errors.New("allocation is below days already used or pending")
	ErrLeaveTypeWithoutQuota        = errors.New("leave type has no quota")
)
