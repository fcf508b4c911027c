package format

import (
	"encoding/csv"
	"fmt"
	"os"

	"tablesync/core"
)

var _ Codec = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Extension() string {
	return "csv"
}

// Write emits the header record first and then one record per row.
// Records are written one by one to keep header emission and per-cell
// stringification explicit.
func (cf *CSV) Write(path string, buf *core.Buffer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrFileAccess, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	err = w.Write(buf.Header())
	if err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}

	for _, row := range buf.Rows() {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = stringifyCell(val)
		}

		err = w.Write(record)
		if err != nil {
			return fmt.Errorf("w.Write: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrFileAccess, err)
	}

	return nil
}

// Read treats the first record as the header and everything after it as
// data rows. All values come back as text.
func (cf *CSV) Read(path string) (*core.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFileAccess, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll: %w", err)
	}

	if len(records) == 0 {
		return core.NewBuffer(core.Header{}, nil)
	}

	header := core.Header(records[0])

	var rows []core.Row
	for _, record := range records[1:] {
		row := make(core.Row, len(record))
		for i, val := range record {
			row[i] = val
		}
		rows = append(rows, row)
	}

	return core.NewBuffer(header, rows)
}

// stringifyCell renders a single weakly typed value for a file cell.
// SQL NULL becomes an empty field.
func stringifyCell(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
