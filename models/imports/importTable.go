// Package imports turns uploaded spreadsheet bytes (CSV or XLSX) into the
// tabular form the reconciliation engine consumes. It never interprets the
// data; header resolution and all business rules live in workflow.
package imports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/sellerdesk/recon_backend/models"
	"github.com/sellerdesk/recon_backend/utils"
)

var errEmptyTable = errors.New("file contains no rows")

// ReadCSV parses a CSV stream into a Table. The first record is the header
// row. Rows may be ragged (marketplace exports often are). Files that are
// not valid UTF-8 are retried as Latin-1, matching how sellers' tools save
// region-encoded reports.
func ReadCSV(r io.Reader, name string) (*models.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding %s as latin-1: %w", name, err)
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", name, errEmptyTable)
	}

	return &models.Table{
		Name:    name,
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}

// ReadWorkbook parses an XLSX stream into a Workbook with one Table per
// sheet. Sheets that fail to read are returned empty rather than failing
// the workbook; the engine skips unusable sheets on its own.
func ReadWorkbook(r io.Reader, name string) (*models.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	wb := &models.Workbook{Name: name}
	for _, sheetName := range f.GetSheetList() {
		table := &models.Table{Name: sheetName}
		rows, err := f.GetRows(sheetName)
		if err == nil && len(rows) > 0 {
			table.Headers = rows[0]
			table.Rows = rows[1:]
		}
		wb.Sheets = append(wb.Sheets, table)
	}
	return wb, nil
}

// ReadTableAuto parses a single table by filename extension. For XLSX the
// first sheet is used, matching how single-table inputs (order report, cost
// sheet) are expected to be laid out.
func ReadTableAuto(r io.Reader, filename string) (*models.Table, error) {
	switch normalizeExt(filename) {
	case ".csv":
		return ReadCSV(r, filename)
	case ".xlsx", ".xls":
		wb, err := ReadWorkbook(r, filename)
		if err != nil {
			return nil, err
		}
		if len(wb.Sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, errEmptyTable)
		}
		return wb.Sheets[0], nil
	default:
		return nil, fmt.Errorf("%s: %w", filename, utils.ErrorUnsupportedFileType)
	}
}

// ReadWorkbookAuto parses a possibly multi-sheet source by extension.
// A CSV becomes a single-sheet workbook.
func ReadWorkbookAuto(r io.Reader, filename string) (*models.Workbook, error) {
	switch normalizeExt(filename) {
	case ".csv":
		table, err := ReadCSV(r, filename)
		if err != nil {
			return nil, err
		}
		return &models.Workbook{Name: filename, Sheets: []*models.Table{table}}, nil
	case ".xlsx", ".xls":
		return ReadWorkbook(r, filename)
	default:
		return nil, fmt.Errorf("%s: %w", filename, utils.ErrorUnsupportedFileType)
	}
}

func normalizeExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
