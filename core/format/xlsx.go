package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tablesync/core"
)

// worksheetNameLimit is the hard cap excel puts on worksheet names.
const worksheetNameLimit = 31

var _ Codec = (*XLSX)(nil)

type XLSX struct{}

func NewXLSX() *XLSX {
	return &XLSX{}
}

func (xf *XLSX) Extension() string {
	return "xlsx"
}

// Write creates a workbook with a single worksheet named after the file's
// base name. The header goes to row 1, data starts at row 2.
// An empty buffer produces no file at all.
func (xf *XLSX) Write(path string, buf *core.Buffer) error {
	if buf.IsEmpty() {
		return nil
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := WorksheetName(path)
	err := file.SetSheetName("Sheet1", sheet)
	if err != nil {
		return fmt.Errorf("file.SetSheetName: %w", err)
	}

	header := make([]any, len(buf.Header()))
	for i, name := range buf.Header() {
		header[i] = name
	}
	err = setRow(file, sheet, 1, header)
	if err != nil {
		return err
	}

	for i, row := range buf.Rows() {
		err = setRow(file, sheet, i+2, row)
		if err != nil {
			return err
		}
	}

	err = file.SaveAs(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrFileAccess, err)
	}

	return nil
}

// Read loads the first worksheet of the workbook. Row 1 becomes the header;
// cells missing from the end of a row come back as empty strings.
func (xf *XLSX) Read(path string) (*core.Buffer, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFileAccess, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no worksheets")
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("file.GetRows: %w", err)
	}

	if len(records) == 0 {
		return core.NewBuffer(core.Header{}, nil)
	}

	header := core.Header(records[0])

	var rows []core.Row
	for _, record := range records[1:] {
		row := make(core.Row, len(header))
		for i := range header {
			if i < len(record) {
				row[i] = record[i]
			} else {
				row[i] = ""
			}
		}
		rows = append(rows, row)
	}

	return core.NewBuffer(header, rows)
}

// WorksheetName derives a worksheet name from the file's base name,
// truncated to the 31 character limit.
func WorksheetName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	runes := []rune(base)
	if len(runes) > worksheetNameLimit {
		return string(runes[:worksheetNameLimit])
	}
	return base
}

func setRow(file *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("excelize.CoordinatesToCellName: %w", err)
	}

	// excel cells don't take raw NULLs or byte blobs
	row := make([]any, len(values))
	for i, val := range values {
		switch v := val.(type) {
		case nil:
			row[i] = ""
		case []byte:
			row[i] = string(v)
		default:
			row[i] = v
		}
	}

	err = file.SetSheetRow(sheet, cell, &row)
	if err != nil {
		return fmt.Errorf("file.SetSheetRow: %w", err)
	}

	return nil
}
