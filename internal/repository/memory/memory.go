// Package memory holds map-backed repositories with the same contracts as the
// postgresql package. Services use them in unit tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/google/uuid"
)

// Store is shared state for every repository in this package.
type Store struct {
	mu          sync.RWMutex
	settings    *company.Settings
	employees   map[string]employee.Employee
	attendance  map[string]attendance.Attendance
	leaveTypes  map[string]leave.LeaveType
	leaves      map[string]leave.LeaveRequest
	quotas      map[string]leave.LeaveQuota
	holidays    map[string]holiday.Holiday
	overtimes   map[string]overtime.Overtime
	now         func() time.Time
	failListing error
}

func NewStore() *Store {
	return &Store{
		employees:  make(map[string]employee.Employee),
		attendance: make(map[string]attendance.Attendance),
		leaveTypes: make(map[string]leave.LeaveType),
		leaves:     make(map[string]leave.LeaveRequest),
		quotas:     make(map[string]leave.LeaveQuota),
		holidays:   make(map[string]holiday.Holiday),
		overtimes:  make(map[string]overtime.Overtime),
		now:        time.Now,
	}
}

// FailRangeQueries makes every range listing return err. Nil restores normal behavior.
func (s *Store) FailRangeQueries(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failListing = err
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func inRange(d, from, to civil.Date) bool {
	return !d.Before(from) && !d.After(to)
}

// ========================================
// SEEDING
// ========================================

func (s *Store) PutSettings(st company.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &st
}

func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

func (s *Store) PutLeaveType(lt leave.LeaveType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaveTypes[lt.ID] = lt
}

func (s *Store) PutAttendance(a attendance.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	s.attendance[a.ID] = a
}

func (s *Store) PutLeaveRequest(lr leave.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lr.ID == "" {
		lr.ID = newID()
	}
	s.leaves[lr.ID] = lr
}

func (s *Store) PutLeaveQuota(q leave.LeaveQuota) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == "" {
		q.ID = newID()
	}
	s.quotas[q.ID] = q
}

func (s *Store) PutHoliday(h holiday.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == "" {
		h.ID = newID()
	}
	s.holidays[h.ID] = h
}

func (s *Store) PutOvertime(o overtime.Overtime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = newID()
	}
	s.overtimes[o.ID] = o
}

// ========================================
// SETTINGS
// ========================================

type settingsRepository struct{ s *Store }

func NewSettingsRepository(s *Store) company.SettingsRepository {
	return &settingsRepository{s: s}
}

func (r *settingsRepository) Get(ctx context.Context) (company.Settings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.settings == nil {
		return company.Settings{}, company.ErrSettingsNotFound
	}
	return *r.s.settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, st company.Settings) (company.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings != nil {
		st.ID = r.s.settings.ID
	} else if st.ID == "" {
		st.ID = newID()
	}
	st.UpdatedAt = r.s.now()
	r.s.settings = &st
	return st, nil
}

// ========================================
// EMPLOYEES
// ========================================

type employeeRepository struct{ s *Store }

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.IsActive && e.DeletedAt == nil {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ========================================
// ATTENDANCE
// ========================================

type attendanceRepository struct{ s *Store }

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.attendance {
		if existing.EmployeeID == a.EmployeeID && existing.Date == a.Date {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	a.ID = newID()
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.attendance[a.ID] = a
	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (*attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.attendance {
		if a.EmployeeID == employeeID && a.Date == date {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *attendanceRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var open *attendance.Attendance
	for _, a := range r.s.attendance {
		if a.EmployeeID != employeeID || a.ClockIn == nil || a.ClockOut != nil {
			continue
		}
		if open == nil || a.Date.After(open.Date) {
			a := a
			open = &a
		}
	}
	return open, nil
}

func (r *attendanceRepository) UpdateClockOut(ctx context.Context, id string, clockOut time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attendance[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.ClockOut = &clockOut
	a.UpdatedAt = r.s.now()
	r.s.attendance[id] = a
	return nil
}

func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failListing != nil {
		return nil, r.s.failListing
	}
	var out []attendance.Attendance
	for _, a := range r.s.attendance {
		if a.EmployeeID == employeeID && inRange(a.Date, from, to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ========================================
// LEAVE
// ========================================

type leaveTypeRepository struct{ s *Store }

func NewLeaveTypeRepository(s *Store) leave.LeaveTypeRepository {
	return &leaveTypeRepository{s: s}
}

func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	lt, ok := r.s.leaveTypes[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *leaveTypeRepository) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []leave.LeaveType
	for _, lt := range r.s.leaveTypes {
		if activeOnly && !lt.IsActive {
			continue
		}
		out = append(out, lt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *leaveTypeRepository) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lt.ID = newID()
	lt.CreatedAt = r.s.now()
	lt.UpdatedAt = lt.CreatedAt
	r.s.leaveTypes[lt.ID] = lt
	return lt, nil
}

type leaveRequestRepository struct{ s *Store }

func NewLeaveRequestRepository(s *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

// withType fills joined leave type fields. Caller holds the lock.
func (r *leaveRequestRepository) withType(lr leave.LeaveRequest) leave.LeaveRequest {
	if lt, ok := r.s.leaveTypes[lr.LeaveTypeID]; ok {
		lr.IsPaid = lt.IsPaid
		name := lt.Name
		lr.LeaveTypeName = &name
	}
	return lr
}

func (r *leaveRequestRepository) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lr.ID = newID()
	lr.CreatedAt = r.s.now()
	lr.UpdatedAt = lr.CreatedAt
	r.s.leaves[lr.ID] = lr
	return r.withType(lr), nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	lr, ok := r.s.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withType(lr), nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []leave.LeaveRequest
	for _, lr := range r.s.leaves {
		if lr.EmployeeID == employeeID {
			out = append(out, r.withType(lr))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromDate != out[j].FromDate {
			return out[i].FromDate.After(out[j].FromDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *leaveRequestRepository) ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failListing != nil {
		return nil, r.s.failListing
	}
	var out []leave.LeaveRequest
	for _, lr := range r.s.leaves {
		if lr.EmployeeID != employeeID || lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if lr.ToDate.Before(from) || lr.FromDate.After(to) {
			continue
		}
		out = append(out, r.withType(lr))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromDate != out[j].FromDate {
			return out[i].FromDate.Before(out[j].FromDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *leaveRequestRepository) HasOverlap(ctx context.Context, employeeID string, from, to civil.Date, statuses []leave.LeaveRequestStatus, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, lr := range r.s.leaves {
		if lr.EmployeeID != employeeID || lr.ID == excludeID {
			continue
		}
		matches := false
		for _, st := range statuses {
			if lr.Status == st {
				matches = true
				break
			}
		}
		if matches && !lr.ToDate.Before(from) && !lr.FromDate.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lr, ok := r.s.leaves[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if lr.Status != leave.LeaveRequestStatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	lr.Status = status
	lr.ReviewedBy = &reviewedBy
	lr.ReviewedAt = &reviewedAt
	lr.RejectionReason = rejectionReason
	lr.UpdatedAt = r.s.now()
	r.s.leaves[id] = lr
	return nil
}

type leaveQuotaRepository struct{ s *Store }

func NewLeaveQuotaRepository(s *Store) leave.LeaveQuotaRepository {
	return &leaveQuotaRepository{s: s}
}

// withTypeName fills the joined leave type name. Caller holds the lock.
func (r *leaveQuotaRepository) withTypeName(q leave.LeaveQuota) leave.LeaveQuota {
	if lt, ok := r.s.leaveTypes[q.LeaveTypeID]; ok {
		name := lt.Name
		q.LeaveTypeName = &name
	}
	return q
}

// find returns the quota key for employee, type and year. Caller holds the lock.
func (r *leaveQuotaRepository) find(employeeID, leaveTypeID string, year int) (string, bool) {
	for id, q := range r.s.quotas {
		if q.EmployeeID == employeeID && q.LeaveTypeID == leaveTypeID && q.Year == year {
			return id, true
		}
	}
	return "", false
}

func (r *leaveQuotaRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveQuota, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.find(employeeID, leaveTypeID, year)
	if !ok {
		return leave.LeaveQuota{}, leave.ErrQuotaNotFound
	}
	return r.withTypeName(r.s.quotas[id]), nil
}

func (r *leaveQuotaRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveQuota, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []leave.LeaveQuota
	for _, q := range r.s.quotas {
		if q.EmployeeID == employeeID && q.Year == year {
			out = append(out, r.withTypeName(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveTypeID < out[j].LeaveTypeID })
	return out, nil
}

func (r *leaveQuotaRepository) Create(ctx context.Context, q leave.LeaveQuota) (leave.LeaveQuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if id, ok := r.find(q.EmployeeID, q.LeaveTypeID, q.Year); ok {
		return r.withTypeName(r.s.quotas[id]), nil
	}
	q.ID = newID()
	q.UsedDays, q.PendingDays = 0, 0
	q.CreatedAt = r.s.now()
	q.UpdatedAt = q.CreatedAt
	r.s.quotas[q.ID] = q
	return r.withTypeName(q), nil
}

func (r *leaveQuotaRepository) SetAllocation(ctx context.Context, q leave.LeaveQuota) (leave.LeaveQuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.find(q.EmployeeID, q.LeaveTypeID, q.Year)
	if !ok {
		q.ID = newID()
		q.UsedDays, q.PendingDays = 0, 0
		q.CreatedAt = r.s.now()
		q.UpdatedAt = q.CreatedAt
		r.s.quotas[q.ID] = q
		return r.withTypeName(q), nil
	}
	existing := r.s.quotas[id]
	if existing.UsedDays+existing.PendingDays > q.AllocatedDays {
		return leave.LeaveQuota{}, leave.ErrQuotaBelowCommitted
	}
	existing.AllocatedDays = q.AllocatedDays
	existing.UpdatedAt = r.s.now()
	r.s.quotas[id] = existing
	return r.withTypeName(existing), nil
}

// adjust applies fn to the quota under the write lock.
func (r *leaveQuotaRepository) adjust(id string, fn func(q *leave.LeaveQuota) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotas[id]
	if !ok {
		return leave.ErrQuotaNotFound
	}
	if err := fn(&q); err != nil {
		return err
	}
	q.UpdatedAt = r.s.now()
	r.s.quotas[id] = q
	return nil
}

func (r *leaveQuotaRepository) AddPending(ctx context.Context, quotaID string, days float64) error {
	return r.adjust(quotaID, func(q *leave.LeaveQuota) error {
		if q.AvailableDays() < days {
			return leave.ErrInsufficientQuota
		}
		q.PendingDays += days
		return nil
	})
}

func (r *leaveQuotaRepository) MovePendingToUsed(ctx context.Context, quotaID string, days float64) error {
	return r.adjust(quotaID, func(q *leave.LeaveQuota) error {
		q.PendingDays = max(q.PendingDays-days, 0)
		q.UsedDays += days
		return nil
	})
}

func (r *leaveQuotaRepository) RemovePending(ctx context.Context, quotaID string, days float64) error {
	return r.adjust(quotaID, func(q *leave.LeaveQuota) error {
		q.PendingDays = max(q.PendingDays-days, 0)
		return nil
	})
}

// ========================================
// HOLIDAYS
// ========================================

type holidayRepository struct{ s *Store }

func NewHolidayRepository(s *Store) holiday.HolidayRepository {
	return &holidayRepository{s: s}
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.holidays {
		if existing.Date == h.Date {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
	}
	h.ID = newID()
	h.CreatedAt = r.s.now()
	r.s.holidays[h.ID] = h
	return h, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}

func (r *holidayRepository) GetByDate(ctx context.Context, date civil.Date) (*holiday.Holiday, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, h := range r.s.holidays {
		if h.Date == date {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *holidayRepository) ListByRange(ctx context.Context, from, to civil.Date) ([]holiday.Holiday, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []holiday.Holiday
	for _, h := range r.s.holidays {
		if inRange(h.Date, from, to) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ========================================
// OVERTIME
// ========================================

type overtimeRepository struct{ s *Store }

func NewOvertimeRepository(s *Store) overtime.OvertimeRepository {
	return &overtimeRepository{s: s}
}

func (r *overtimeRepository) Create(ctx context.Context, o overtime.Overtime) (overtime.Overtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = newID()
	o.CreatedAt = r.s.now()
	o.UpdatedAt = o.CreatedAt
	r.s.overtimes[o.ID] = o
	return o, nil
}

func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.Overtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.overtimes[id]
	if !ok {
		return overtime.Overtime{}, overtime.ErrOvertimeNotFound
	}
	return o, nil
}

func (r *overtimeRepository) ExistsForEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.overtimes {
		if o.EmployeeID == employeeID && o.Date == date && o.Status != overtime.StatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (r *overtimeRepository) ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]overtime.Overtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failListing != nil {
		return nil, r.s.failListing
	}
	var out []overtime.Overtime
	for _, o := range r.s.overtimes {
		if o.EmployeeID == employeeID && o.IsApproved() && inRange(o.Date, from, to) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *overtimeRepository) UpdateStatus(ctx context.Context, id string, status overtime.Status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.overtimes[id]
	if !ok {
		return overtime.ErrOvertimeNotFound
	}
	if o.Status != overtime.StatusPending {
		return overtime.ErrOvertimeAlreadyProcessed
	}
	o.Status = status
	o.ReviewedBy = &reviewedBy
	o.ReviewedAt = &reviewedAt
	o.RejectionReason = rejectionReason
	o.UpdatedAt = r.s.now()
	r.s.overtimes[id] = o
	return nil
}
