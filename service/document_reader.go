package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/utils"
	"github.com/xuri/excelize/v2"
)

type DocumentFormat string

const (
	FormatCSV         DocumentFormat = "csv"
	FormatSpreadsheet DocumentFormat = "spreadsheet"
	FormatPDF         DocumentFormat = "pdf"
)

// minTextLength is the shortest text layer still treated as a text PDF;
// anything shorter is OCR'd as a scanned document.
const minTextLength = 20

// Document is an uploaded file held in memory.
type Document struct {
	Filename string
	Data     []byte
	Password string
}

// PageOCR reads text from a scanned page image.
type PageOCR interface {
	ExtractTextFromImage(img image.Image) (string, float64, error)
}

// DetectFormat picks the reader for a file from its extension.
func DetectFormat(filename string) (DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatSpreadsheet, nil
	case ".xls":
		return "", fmt.Errorf("%w: %s (legacy .xls workbooks must be saved as .xlsx or .csv)", dto.ErrUnsupportedFormat, filename)
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %s", dto.ErrUnsupportedFormat, filename)
}

// DocumentReader turns CSV, spreadsheet and PDF uploads into rows.
type DocumentReader struct {
	pdfProcessor PDFProcessor
	ocr          PageOCR
}

// NewDocumentReader creates a reader. ocr may be nil, in which case scanned PDFs yield no rows.
func NewDocumentReader(pdfProcessor PDFProcessor, ocr PageOCR) *DocumentReader {
	return &DocumentReader{
		pdfProcessor: pdfProcessor,
		ocr:          ocr,
	}
}

// ReadRows returns the document as positional rows for field extraction.
func (r *DocumentReader) ReadRows(ctx context.Context, doc Document) ([]dto.RawRow, error) {
	format, err := DetectFormat(doc.Filename)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return readCSV(doc)
	case FormatSpreadsheet:
		return readSpreadsheet(doc)
	default:
		text, err := r.pdfText(ctx, doc)
		if err != nil {
			return nil, err
		}
		var rows []dto.RawRow
		for _, line := range strings.Split(text, "\n") {
			if fields := strings.Fields(line); len(fields) > 0 {
				rows = append(rows, dto.RawRow(fields))
			}
		}
		return rows, nil
	}
}

// ReadTransactions returns the statement entries in a document. Tabular files
// must carry a header row; PDF lines are read as "date credit debit description".
func (r *DocumentReader) ReadTransactions(ctx context.Context, doc Document, fallbackAccount string) ([]dto.Transaction, error) {
	format, err := DetectFormat(doc.Filename)
	if err != nil {
		return nil, err
	}

	if format == FormatPDF {
		text, err := r.pdfText(ctx, doc)
		if err != nil {
			return nil, err
		}
		var txns []dto.Transaction
		for _, line := range strings.Split(text, "\n") {
			if txn, ok := utils.ParseStatementLine(line, doc.Filename); ok {
				txns = append(txns, txn)
			}
		}
		return txns, nil
	}

	var rows []dto.RawRow
	if format == FormatCSV {
		rows, err = readCSV(doc)
	} else {
		rows, err = readSpreadsheet(doc)
	}
	if err != nil {
		return nil, err
	}

	var txns []dto.Transaction
	for _, record := range headerRecords(rows) {
		txns = append(txns, utils.NormalizeRowForAccount(record, fallbackAccount))
	}
	return txns, nil
}

func (r *DocumentReader) pdfText(ctx context.Context, doc Document) (string, error) {
	text, textErr := r.pdfProcessor.ExtractText(doc.Data, doc.Password)
	if textErr != nil {
		log.Printf("PDF text extraction failed for %s: %v", doc.Filename, textErr)
	}

	if len(strings.TrimSpace(text)) >= minTextLength {
		return text, nil
	}

	if r.ocr == nil {
		if textErr != nil {
			return "", textErr
		}
		log.Printf("PDF %s has no usable text layer and OCR is disabled", doc.Filename)
		return text, nil
	}

	log.Printf("PDF %s seems to be scanned, attempting image-based OCR", doc.Filename)

	images, err := r.pdfProcessor.ExtractImages(doc.Data, doc.Password)
	if err != nil {
		return "", fmt.Errorf("failed to extract images from %s: %w", doc.Filename, err)
	}

	var combined strings.Builder
	for idx, img := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pageText, conf, err := r.ocr.ExtractTextFromImage(img)
		if err != nil {
			log.Printf("OCR failed for page %d of %s: %v", idx+1, doc.Filename, err)
			continue
		}
		log.Printf("OCR page %d of %s: %d chars, confidence %.1f", idx+1, doc.Filename, len(pageText), conf)

		combined.WriteString(pageText)
		combined.WriteString("\n")
	}

	if strings.TrimSpace(combined.String()) == "" {
		return "", fmt.Errorf("no text could be extracted from %s", doc.Filename)
	}
	return combined.String(), nil
}

// utf8BOM is prepended by spreadsheet "CSV UTF-8" exports.
var utf8BOM = []byte("\xef\xbb\xbf")

func readCSV(doc Document) ([]dto.RawRow, error) {
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(doc.Data, utf8BOM)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var rows []dto.RawRow
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Printf("Skipping malformed CSV row in %s: %v", doc.Filename, err)
			continue
		}
		if err != nil {
			return rows, fmt.Errorf("reading %s: %w", doc.Filename, err)
		}
		rows = append(rows, dto.RawRow(record))
	}
	return rows, nil
}

func readSpreadsheet(doc Document) ([]dto.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", doc.Filename, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", doc.Filename)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, doc.Filename, err)
	}

	rows := make([]dto.RawRow, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, dto.RawRow(c))
	}
	return rows, nil
}

// headerRecords keys each data row by the first non-blank row's cells,
// skipping blank rows.
func headerRecords(rows []dto.RawRow) []map[string]string {
	var header dto.RawRow
	var records []map[string]string

	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}

		record := make(map[string]string, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" || i >= len(row) {
				continue
			}
			record[name] = row[i]
		}
		records = append(records, record)
	}
	return records
}

func isBlankRow(row dto.RawRow) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
