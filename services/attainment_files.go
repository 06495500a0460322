package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/stack"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	XLSX_FORMAT = "xlsx"
	PDF_FORMAT  = "pdf"
	ZIP_FORMAT  = "zip"
)

var contentTypes = map[string]string{
	XLSX_FORMAT: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	PDF_FORMAT:  "application/pdf",
	ZIP_FORMAT:  "application/zip",
}

func ContentType(format string) (string, bool) {
	contentType, ok := contentTypes[format]
	return contentType, ok
}

// Header row shared by the spreadsheet and the PDF report
func attainmentTable(attainments []Attainment) ([]string, [][]string) {
	skills, courses := AttainmentLabels(attainments)
	header := []string{"Rollno", "Name"}
	for _, skill := range skills {
		header = append(header, skill+" SEE", skill+" CIE")
	}
	for _, course := range courses {
		header = append(header, course)
	}

	rows := make([][]string, 0, len(attainments))
	for _, attainment := range attainments {
		row := []string{attainment.Rollno, attainment.Name}
		for _, skill := range skills {
			if s, ok := attainment.Skills[skill]; ok {
				row = append(row, formatMark(s.See), formatMark(s.Cie))
			} else {
				row = append(row, "", "")
			}
		}
		for _, course := range courses {
			if avg, ok := attainment.Courses[course]; ok {
				row = append(row, formatMark(avg))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}

func formatMark(mark float64) string {
	return fmt.Sprintf("%.2f", mark)
}

func WriteAttainmentXlsx(attainments []Attainment, title string, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	sheetName := "Attainment"
	file.SetSheetName("Sheet1", sheetName)
	skills, courses := AttainmentLabels(attainments)

	header := []interface{}{"Rollno", "Name"}
	for _, skill := range skills {
		header = append(header, skill+" SEE", skill+" CIE")
	}
	for _, course := range courses {
		header = append(header, course)
	}
	if err := file.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, attainment := range attainments {
		row := []interface{}{attainment.Rollno, attainment.Name}
		for _, skill := range skills {
			if s, ok := attainment.Skills[skill]; ok {
				row = append(row, s.See, s.Cie)
			} else {
				row = append(row, nil, nil)
			}
		}
		for _, course := range courses {
			if avg, ok := attainment.Courses[course]; ok {
				row = append(row, avg)
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	if err := file.SetDocProps(&excelize.DocProperties{
		Title:   title,
		Creator: "attainment",
	}); err != nil {
		return err
	}
	return file.Write(w)
}

func WriteAttainmentPdf(attainments []Attainment, college, title string, w io.Writer) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 9)
	pdf.AddPage()

	width, height := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(5, 10, tr(college))
	pdf.Text(5, 16, tr(title))
	pdf.SetFont("Helvetica", "", 8)
	date := fmt.Sprintf("Issued %s", time.Now().UTC().Format("2006-01-02"))
	pdf.Text(width-5-pdf.GetStringWidth(date), height-5, date)

	header, rows := attainmentTable(attainments)
	nameWidth := 40.0
	cellWidth := (width - 10 - nameWidth) / float64(len(header)-1)
	widthOf := func(column int) float64 {
		if column == 1 {
			return nameWidth
		}
		return cellWidth
	}

	pdf.SetXY(5, 22)
	pdf.SetFont("Helvetica", "B", 7)
	for i, column := range header {
		pdf.CellFormat(widthOf(i), 5, tr(column), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 7)
	for _, row := range rows {
		pdf.SetX(5)
		for i, value := range row {
			align := "C"
			if i == 1 {
				align = "L"
			}
			pdf.CellFormat(widthOf(i), 5, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// Writers implementing Titled learn the report title before the first byte
type Titled interface {
	SetTitle(title string)
}

func reportTitle(semester *models.Semester) string {
	return fmt.Sprintf("Co-attainment report %s", semester.Title)
}

// File name safe form of a report title
func ReportFileName(title, format string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimPrefix(title, "Co-attainment report "))
	return fmt.Sprintf("attainment-%s.%s", name, format)
}

func (a *AttainmentService) writeZip(attainments []Attainment, title string, w io.Writer) error {
	zipWriter := zip.NewWriter(w)
	xlsx, err := zipWriter.Create("attainment.xlsx")
	if err != nil {
		return err
	}
	if err := WriteAttainmentXlsx(attainments, title, xlsx); err != nil {
		return err
	}
	pdf, err := zipWriter.Create("attainment.pdf")
	if err != nil {
		return err
	}
	if err := WriteAttainmentPdf(attainments, a.collegeName, title, pdf); err != nil {
		return err
	}
	return zipWriter.Close()
}

func (a *AttainmentService) write(format string, attainments []Attainment, title string, w io.Writer) error {
	switch format {
	case XLSX_FORMAT:
		return WriteAttainmentXlsx(attainments, title, w)
	case PDF_FORMAT:
		return WriteAttainmentPdf(attainments, a.collegeName, title, w)
	default:
		return a.writeZip(attainments, title, w)
	}
}

// Renders the report before anything reaches w, so failures can still be answered with an error
func (a *AttainmentService) Export(
	ctx context.Context,
	format,
	idUser,
	idBatch,
	idSemester string,
	w io.Writer,
) *res.ErrorRes {
	if _, ok := ContentType(format); !ok {
		return res.NewErrorRes(http.StatusBadRequest, fmt.Sprintf("unknown export format %q", format))
	}
	semester, attainments, errRes := a.report(ctx, idUser, idBatch, idSemester)
	if errRes != nil {
		return errRes
	}
	title := reportTitle(semester)
	var buffer bytes.Buffer
	if err := a.write(format, attainments, title, &buffer); err != nil {
		zap.L().Error("export attainment", zap.String("format", format), zap.Error(err))
		return res.Internal(err)
	}
	if titled, ok := w.(Titled); ok {
		titled.SetTitle(title)
	}
	if _, err := buffer.WriteTo(w); err != nil {
		return res.Internal(err)
	}
	return nil
}

// Archives the zip bundle and announces it on attainment.published
func (a *AttainmentService) Publish(
	ctx context.Context,
	idUser,
	idBatch,
	idSemester string,
) (*res.PublishedReport, *res.ErrorRes) {
	if a.files == nil {
		return nil, res.NewErrorRes(http.StatusServiceUnavailable, "report storage is not configured")
	}
	semester, attainments, errRes := a.report(ctx, idUser, idBatch, idSemester)
	if errRes != nil {
		return nil, errRes
	}
	var buffer bytes.Buffer
	if err := a.writeZip(attainments, reportTitle(semester), &buffer); err != nil {
		return nil, res.Internal(err)
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, res.Internal(err)
	}
	key := fmt.Sprintf("attainment/%s/%s/%s.zip", idBatch, idSemester, id.String())
	if err := a.files.UploadFile(ctx, key, contentTypes[ZIP_FORMAT], &buffer); err != nil {
		zap.L().Error("upload report", zap.String("key", key), zap.Error(err))
		return nil, res.Unavailable(err)
	}
	url, err := a.files.PresignGet(key)
	if err != nil {
		return nil, res.Unavailable(err)
	}
	report := &res.PublishedReport{
		User:     idUser,
		Batch:    idBatch,
		Semester: idSemester,
		Key:      key,
		URL:      url,
	}
	if err := a.publisher.PublishEncode(stack.ATTAINMENT_PUBLISHED, report); err != nil {
		zap.L().Warn("report published without notification", zap.String("key", key), zap.Error(err))
	}
	return report, nil
}
