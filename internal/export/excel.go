// Package export renders attendance records as a single-sheet Excel
// workbook with a fixed column layout.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"absensi/internal/absensi"
)

// User-facing export errors, returned verbatim in the JSON envelope.
var (
	// ErrEmptyDataset is returned when there are no records at all.
	ErrEmptyDataset = errors.New("Data kosong")

	// ErrNoDataForName is returned when a filtered export matches nothing.
	ErrNoDataForName = errors.New("Tidak ada data untuk nama ini")
)

// DefaultLocale drives the date column formatting.
const DefaultLocale = "id-ID"

// ContentType is the MIME type of a generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []any{
	"No", "Tanggal", "Nama", "Area", "Jenis Pekerjaan",
	"Rentang Waktu", "Deskripsi", "Consent", "URL Foto",
}

// Workbook renders all records into a workbook. Records are written in the
// order given; the caller supplies them already sorted newest-first. A zero
// record set is an error, not a valid empty file.
func Workbook(records []absensi.Record, locale string) (*excelize.File, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return build(records, "Data Absensi", locale)
}

// WorkbookForName renders only the records whose employee name exactly
// matches name. The sheet title embeds the name.
func WorkbookForName(records []absensi.Record, name, locale string) (*excelize.File, error) {
	var filtered []absensi.Record
	for _, rec := range records {
		if rec.Nama == name {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		return nil, ErrNoDataForName
	}
	return build(filtered, sheetName("Absensi "+name), locale)
}

func build(records []absensi.Record, sheet, locale string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, rec := range records {
		consent := "Tidak"
		if rec.Consent {
			consent = "Ya"
		}
		row := []any{
			i + 1,
			FormatDate(rec.Timestamp, locale),
			rec.Nama,
			rec.Area,
			rec.Jenis,
			rec.RentangWaktu,
			rec.Deskripsi,
			consent,
			rec.Foto,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// FormatDate renders the date-only part of t per locale. id-ID uses
// day/month/year without zero padding, matching the browser rendering the
// dashboard shows for the same records.
func FormatDate(t time.Time, locale string) string {
	switch locale {
	case "en-US":
		return fmt.Sprintf("%d/%d/%d", t.Month(), t.Day(), t.Year())
	default: // id-ID
		return fmt.Sprintf("%d/%d/%d", t.Day(), t.Month(), t.Year())
	}
}

// sheetName trims a title to Excel's 31-character sheet name limit and
// strips characters Excel rejects.
func sheetName(title string) string {
	replacer := strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "")
	title = replacer.Replace(title)
	if len(title) > 31 {
		title = title[:31]
	}
	return title
}
