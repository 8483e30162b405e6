package bookings

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []interface{}{
	"booking_id",
	"created_at",
	"status",
	"source",
	"name",
	"phone",
	"email",
	"event_type",
	"event_date",
	"time_slot",
	"guest_count",
	"location",
	"budget",
	"message",
}

// ExportExcel выгружает заявки в xlsx: одна строка на заявку, первая строка: заголовок.
func ExportExcel(list []Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, b := range list {
		row := []interface{}{
			b.Reference,
			b.CreatedAt.Format("2006-01-02 15:04"),
			string(b.Status),
			string(b.Source),
			b.Name,
			b.Phone,
			b.Email,
			b.EventType,
			b.EventDate.Format(time.DateOnly),
			FormatTimeSlot(b.TimeSlot),
			b.GuestCount,
			b.Location,
			b.Budget,
			b.Message,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
