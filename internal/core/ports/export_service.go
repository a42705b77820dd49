package ports

import (
	"bytes"
	"context"
)

type ExportService interface {
	// ExportTravelRequests renders every travel request as an .xlsx workbook and
	// returns it along with a suggested file name.
	ExportTravelRequests(ctx context.Context) (*bytes.Buffer, string, error)
}
