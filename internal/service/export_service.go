package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	appErrors "github.com/noah-isme/ministry-booking-api/pkg/errors"
	"github.com/noah-isme/ministry-booking-api/pkg/export"
)

type exportAppointmentLister interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error)
}

// ExportResult is a rendered download.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders the filtered appointment list as CSV or PDF for the
// staff dashboard.
type ExportService struct {
	appointments exportAppointmentLister
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	logger       *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(appointments exportAppointmentLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		appointments: appointments,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		logger:       logger,
	}
}

var exportHeaders = []string{"ID", "Requester", "Email", "Phone", "Minister", "Date", "Start", "End", "Status", "Remark"}

// Appointments exports the filtered list in the requested format.
func (s *ExportService) Appointments(ctx context.Context, filter models.AppointmentFilter, format string) (*ExportResult, error) {
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 100
	}

	items, _, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointments for export")
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(items))}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":        strconv.FormatInt(item.ID, 10),
			"Requester": item.FullName,
			"Email":     item.Email,
			"Phone":     item.PhoneNumber,
			"Minister":  item.MinisterName,
			"Date":      item.SlotDate.Format("2006-01-02"),
			"Start":     models.Clock(item.StartTime),
			"End":       models.Clock(item.EndTime),
			"Status":    string(item.Status),
			"Remark":    item.AdminNotes,
		})
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("appointments-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	default:
		content, err := s.pdf.Render(dataset, "Appointment Requests")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("appointments-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	}
}
