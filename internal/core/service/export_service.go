package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

const exportSheet = "Travel Requests"

var exportHeader = []interface{}{
	"ID", "Requester", "Project", "Purpose", "Start Date", "Travel Mode",
	"Booking Mode", "From", "To", "Status", "Created At",
}

// ExportService renders travel requests as a spreadsheet for staff.
type ExportService struct {
	repo   ports.TravelRequestRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewExportService(repo ports.TravelRequestRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{repo: repo, logger: logger, now: time.Now}
}

func (s *ExportService) ExportTravelRequests(ctx context.Context) (*bytes.Buffer, string, error) {
	requests, err := s.repo.List(ctx, 0)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, "", fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(exportSheet, 1, 1, bold)
	}

	for i, tr := range requests {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		row := exportRow(tr)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("write row %d: %w", tr.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	name := fmt.Sprintf("travel-requests-%s.xlsx", s.now().UTC().Format("20060102-150405"))
	s.logger.Info().Int("rows", len(requests)).Str("file", name).Msg("travel requests exported")
	return buf, name, nil
}

func exportRow(tr domain.TravelRequest) []interface{} {
	return []interface{}{
		tr.ID,
		tr.Username,
		tr.ProjectName,
		tr.TravelPurpose,
		tr.StartDate.Format(domain.DateLayout),
		string(tr.TravelMode),
		string(tr.BookingMode),
		tr.StartLocation,
		tr.EndLocation,
		string(tr.Status),
		tr.CreatedAt.UTC().Format(time.RFC3339),
	}
}
