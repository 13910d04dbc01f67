package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Asistencia"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	notAvailable = "N/A"
	attended     = "Asistió"
	notAttended  = "No asistió"
)

var header = []string{"ID", "Documento", "Nombre", "Fecha", "Estado"}

// AttendanceWorkbook renders reservations as an xlsx file with a single
// Asistencia sheet. dateLabel fills the Fecha column when set; otherwise each
// row falls back to its own reservation date.
func AttendanceWorkbook(reservations []reservation.Reservation, dateLabel string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range reservations {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.ID,
			orNotAvailable(r.DocumentID),
			orNotAvailable(r.PersonName),
			orNotAvailable(firstNonEmpty(dateLabel, r.EventDate)),
			statusLabel(r.Confirmation),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "B", "C", 28)
	_ = f.SetColWidth(SheetName, "D", "D", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName builds Asistencia_<label>_<dd-mm-yyyy>.xlsx, using "datos" when
// there is no label.
func FileName(dateLabel string, now time.Time) string {
	label := strings.TrimSpace(dateLabel)
	if label == "" {
		label = "datos"
	}
	label = strings.NewReplacer("/", "-", "\\", "-").Replace(label)
	return fmt.Sprintf("Asistencia_%s_%s.xlsx", label, now.Format("02-01-2006"))
}

// statusLabel only distinguishes confirmed attendance; pending and absent
// both export as not attended.
func statusLabel(c reservation.Confirmation) string {
	if c == reservation.Attended {
		return attended
	}
	return notAttended
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
