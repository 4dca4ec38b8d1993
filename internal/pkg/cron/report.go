package cron

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
)

// ReportJobs archives each closed month's salary report to file storage.
type ReportJobs struct {
	reportService report.ReportService
	storage       storage.FileStorage
	location      *time.Location
	now           func() time.Time
}

func NewReportJobs(reportService report.ReportService, fileStorage storage.FileStorage, loc *time.Location) *ReportJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportJobs{
		reportService: reportService,
		storage:       fileStorage,
		location:      loc,
		now:           time.Now,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("archive_monthly_report", interval, j.ArchivePreviousMonth)
}

// ArchivePreviousMonth stores the workbook for the month before the current
// one. An existing archive is left untouched.
func (j *ReportJobs) ArchivePreviousMonth(ctx context.Context) error {
	month := engine.MonthOf(civil.DateOf(j.now().In(j.location))).Previous()
	return j.Archive(ctx, month)
}

func (j *ReportJobs) Archive(ctx context.Context, month engine.Month) error {
	key := report.ArchiveKey(month)

	exists, err := j.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check archive %s: %w", key, err)
	}
	if exists {
		slog.Debug("report archive already present", "key", key)
		return nil
	}

	rep, err := j.reportService.GenerateMonthlyReport(ctx, report.MonthlyReportRequest{
		Month: int(month.Month),
		Year:  month.Year,
	})
	if err != nil {
		if errors.Is(err, report.ErrNoDataFound) {
			slog.Info("no employees to archive", "period", month.String())
			return nil
		}
		return fmt.Errorf("failed to generate report for %s: %w", month, err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, report.FormatXLSX, rep, export.Options{IncludeBreakdown: true}); err != nil {
		return fmt.Errorf("failed to render report for %s: %w", month, err)
	}

	stored, err := j.storage.Upload(ctx, &buf, key, export.ContentType(report.FormatXLSX))
	if err != nil {
		return fmt.Errorf("failed to upload report archive: %w", err)
	}

	slog.Info("monthly report archived",
		"period", month.String(),
		"employees", len(rep.Rows),
		"url", j.storage.URL(stored),
	)
	return nil
}
