// Package export renders farmer listings as CSV, XLSX or PDF. Every export is
// built fully in memory before it is written out.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"agrosmart/entities"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Columns is the fixed column order of CSV and XLSX exports.
var Columns = []string{
	"id", "name", "state", "lga", "location", "crop", "phone",
	"photo", "farm_photo", "flood_risk", "rainfall", "created_at",
}

// File is a rendered export ready to send.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Row returns the values of f in Columns order.
func Row(f entities.Farmer) []string {
	return []string{
		strconv.FormatUint(uint64(f.ID), 10),
		f.Name,
		f.State,
		f.LGA,
		f.Location,
		f.Crop,
		f.Phone,
		f.PhotoPath,
		f.FarmPhotoPath,
		f.FloodRisk,
		strconv.FormatFloat(f.Rainfall, 'f', -1, 64),
		f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Build renders farmers in the given format. scope names the selection
// ("all", a state, or "state_lga") and ends up in the file name.
func Build(format, scope string, farmers []entities.Farmer, now time.Time) (*File, error) {
	var (
		body []byte
		ct   string
		err  error
	)
	switch format {
	case "", FormatCSV:
		format, ct = FormatCSV, "text/csv; charset=utf-8"
		body, err = BuildCSV(farmers)
	case FormatXLSX:
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		body, err = BuildXLSX(farmers)
	case FormatPDF:
		ct = "application/pdf"
		body, err = BuildPDF(scope, farmers, now)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s export: %w", format, err)
	}
	name := fmt.Sprintf("farmers_%s_%s.%s", sanitizeFilename(scope), now.Format("20060102_150405"), format)
	return &File{Name: name, ContentType: ct, Body: body}, nil
}

func BuildCSV(farmers []entities.Farmer) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, f := range farmers {
		if err := w.Write(Row(f)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func BuildXLSX(farmers []entities.Farmer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "farmers"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, fm := range farmers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			fm.ID, fm.Name, fm.State, fm.LGA, fm.Location, fm.Crop, fm.Phone,
			fm.PhotoPath, fm.FarmPhotoPath, fm.FloodRisk, fm.Rainfall,
			fm.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDF renders a printable summary table. Photo paths and the advisory
// snapshot are left out to fit a landscape page.
func BuildPDF(scope string, farmers []entities.Farmer, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return cp1252(hooked.Replace(s)) }
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()
	pdf.Cell(0, 8, tr("Farmer Registry: "+scope))
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s   Records: %d", now.Format(time.RFC3339), len(farmers)))
	pdf.Ln(9)

	widths := []float64{14, 60, 35, 45, 45, 35, 40}
	head := []string{"ID", "Name", "State", "LGA", "Crop", "Phone", "Registered"}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range head {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, f := range farmers {
		cells := []string{
			strconv.FormatUint(uint64(f.ID), 10), f.Name, f.State, f.LGA, f.Crop, f.Phone,
			f.CreatedAt.Format("2006-01-02 15:04"),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// hooked maps the Hausa hooked letters, which the core PDF fonts cannot
// encode, to their plain forms.
var hooked = strings.NewReplacer(
	"ɓ", "b", "Ɓ", "B",
	"ɗ", "d", "Ɗ", "D",
	"ƙ", "k", "Ƙ", "K",
	"ƴ", "y", "Ƴ", "Y",
)

func sanitizeFilename(s string) string {
	s = unsafeName.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "all"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
