package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAttendanceWorkbook(t *testing.T) {
	data, err := AttendanceWorkbook([]reservation.Reservation{
		{ID: 10, DocumentID: "1001", PersonName: "Ana", EventDate: "2025-11-04", Confirmation: reservation.Attended},
		{ID: 11, Confirmation: reservation.Absent},
		{ID: 12, DocumentID: "1003", PersonName: "Luis"},
	}, "Martes 4 de noviembre")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"ID", "Documento", "Nombre", "Fecha", "Estado"}, rows[0])
	assert.Equal(t, []string{"10", "1001", "Ana", "Martes 4 de noviembre", "Asistió"}, rows[1])
	assert.Equal(t, []string{"11", "N/A", "N/A", "Martes 4 de noviembre", "No asistió"}, rows[2])
	assert.Equal(t, []string{"12", "1003", "Luis", "Martes 4 de noviembre", "No asistió"}, rows[3])
}

func TestAttendanceWorkbook_FallsBackToReservationDate(t *testing.T) {
	data, err := AttendanceWorkbook([]reservation.Reservation{
		{ID: 1, DocumentID: "1", PersonName: "A", EventDate: "2025-11-04"},
		{ID: 2, DocumentID: "2", PersonName: "B"},
	}, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-11-04", rows[1][3])
	assert.Equal(t, "N/A", rows[2][3])
}

func TestAttendanceWorkbook_HeaderOnly(t *testing.T) {
	data, err := AttendanceWorkbook(nil, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, time.March, 5, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "Asistencia_datos_05-03-2025.xlsx", FileName("", now))
	assert.Equal(t, "Asistencia_datos_05-03-2025.xlsx", FileName("   ", now))
	assert.Equal(t, "Asistencia_Martes 4 de noviembre_05-03-2025.xlsx", FileName("Martes 4 de noviembre", now))
	assert.Equal(t, "Asistencia_04-11-2025_18-12-2025.xlsx", FileName("04/11/2025", time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Asistencia_datos_02-01-2026.xlsx", FileName("", time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)))
}
