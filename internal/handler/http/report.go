package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
)

type ReportHandler interface {
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
	DownloadArchive(w http.ResponseWriter, r *http.Request)
	GetMySummary(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
	fileStorage   storage.FileStorage
}

func NewReportHandler(reportService report.ReportService, fileStorage storage.FileStorage) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
		fileStorage:   fileStorage,
	}
}

func monthlyReportRequest(r *http.Request) (report.MonthlyReportRequest, error) {
	month, year, err := queryPeriod(r)
	if err != nil {
		return report.MonthlyReportRequest{}, err
	}
	return report.MonthlyReportRequest{
		Month:      month,
		Year:       year,
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employee_id")),
	}, nil
}

// GetMonthlyReport implements ReportHandler.
// GET /reports/monthly?month=1&year=2025[&employee_id=...][&breakdown=true]
func (h *ReportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, err := monthlyReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rep, err := h.reportService.GenerateMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewMonthlyReportResponse(rep, queryBool(r, "breakdown")))
}

// ExportMonthlyReport implements ReportHandler.
// GET /reports/monthly/export?format=xlsx&month=1&year=2025[&breakdown=true]
func (h *ReportHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	base, err := monthlyReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := report.ExportReportRequest{
		MonthlyReportRequest: base,
		Format:               report.ExportFormat(strings.ToLower(r.URL.Query().Get("format"))),
		IncludeBreakdown:     queryBool(r, "breakdown"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rep, err := h.reportService.GenerateMonthlyReport(r.Context(), req.MonthlyReportRequest)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Rendered into memory first so a failure still produces a JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, req.Format, rep, export.Options{IncludeBreakdown: req.IncludeBreakdown}); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(req.Format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(rep, req.Format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// DownloadArchive implements ReportHandler.
// GET /reports/monthly/archive?month=1&year=2025
func (h *ReportHandlerImpl) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	req, err := monthlyReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	month, err := engine.NewMonth(req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	body, err := h.fileStorage.Download(r.Context(), report.ArchiveKey(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer body.Close()

	filename := export.FileName(report.MonthlyReport{Period: month}, report.FormatXLSX)
	w.Header().Set("Content-Type", export.ContentType(report.FormatXLSX))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		slog.Error("failed to stream archived report", "key", report.ArchiveKey(month), "error", err)
	}
}

// GetMySummary implements ReportHandler.
// GET /reports/my-summary?month=1&year=2025
func (h *ReportHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month, year, err := queryPeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.reportService.GetEmployeeSummary(r.Context(), report.EmployeeSummaryRequest{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
