package engine

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
)

// LeaveDay is the leave coverage of a single working date.
type LeaveDay struct {
	RequestID string
	IsPaid    bool
	IsFullDay bool
	Session   leave.Session
}

// LeaveExpansion is one request spread over the working days it covers.
type LeaveExpansion struct {
	RequestID string
	Days      map[civil.Date]LeaveDay
	DayCount  float64
}

// ExpandLeave lists the working dates a request covers. Weekend dates are
// skipped. Half days apply on the first date when it starts in the afternoon
// and on the last date when it ends in the morning. A single-date request is
// a half day when either session is not full.
func (p Policy) ExpandLeave(req leave.LeaveRequest, isPaid bool) LeaveExpansion {
	exp := LeaveExpansion{
		RequestID: req.ID,
		Days:      make(map[civil.Date]LeaveDay),
	}
	single := req.FromDate == req.ToDate

	for d := req.FromDate; !d.After(req.ToDate); d = d.AddDays(1) {
		if p.IsWeekend(d) {
			continue
		}

		day := LeaveDay{
			RequestID: req.ID,
			IsPaid:    isPaid,
			IsFullDay: true,
			Session:   leave.SessionFull,
		}
		switch {
		case single:
			if req.FromSession != leave.SessionFull {
				day.IsFullDay, day.Session = false, req.FromSession
			} else if req.ToSession != leave.SessionFull {
				day.IsFullDay, day.Session = false, req.ToSession
			}
		case d == req.FromDate && req.FromSession == leave.SessionAfternoon:
			day.IsFullDay, day.Session = false, leave.SessionAfternoon
		case d == req.ToDate && req.ToSession == leave.SessionMorning:
			day.IsFullDay, day.Session = false, leave.SessionMorning
		}

		if day.IsFullDay {
			exp.DayCount += 1
		} else {
			exp.DayCount += 0.5
		}
		exp.Days[d] = day
	}
	return exp
}

// MergedLeave is the union of several expansions keyed by date.
type MergedLeave struct {
	Days map[civil.Date]LeaveDay
	// Conflicts lists dates claimed by more than one request, ascending.
	Conflicts []civil.Date
}

// MergeLeave unions expansions. When two requests cover the same date the
// one passed first keeps it and the date is recorded as a conflict.
func MergeLeave(expansions ...LeaveExpansion) MergedLeave {
	merged := MergedLeave{Days: make(map[civil.Date]LeaveDay)}
	conflicted := make(map[civil.Date]bool)

	for _, exp := range expansions {
		for _, d := range sortedDates(exp.Days) {
			if _, taken := merged.Days[d]; taken {
				if !conflicted[d] {
					conflicted[d] = true
					merged.Conflicts = append(merged.Conflicts, d)
				}
				continue
			}
			merged.Days[d] = exp.Days[d]
		}
	}
	sortDates(merged.Conflicts)
	return merged
}

// ExpandAll orders requests by start date then ID, expands each with its own
// paid flag and merges them.
func (p Policy) ExpandAll(requests []leave.LeaveRequest) MergedLeave {
	ordered := make([]leave.LeaveRequest, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].FromDate != ordered[j].FromDate {
			return ordered[i].FromDate.Before(ordered[j].FromDate)
		}
		return ordered[i].ID < ordered[j].ID
	})

	expansions := make([]LeaveExpansion, 0, len(ordered))
	for _, req := range ordered {
		expansions = append(expansions, p.ExpandLeave(req, req.IsPaid))
	}
	return MergeLeave(expansions...)
}

func sortedDates[V any](m map[civil.Date]V) []civil.Date {
	dates := make([]civil.Date, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sortDates(dates)
	return dates
}

func sortDates(dates []civil.Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
