package core

import "fmt"

// Buffer is a fully materialized rectangular result: named columns and
// positionally aligned rows. It is built once by a reader, handed to exactly
// one writer and never mutated in between.
type Buffer struct {
	header Header
	rows   []Row
}

// NewBuffer validates that every row has exactly as many values as the
// header has columns. No other validation is done - values stay weakly typed.
func NewBuffer(header Header, rows []Row) (*Buffer, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d values, header has %d", ErrShape, i, len(row), len(header))
		}
	}

	return &Buffer{
		header: header,
		rows:   rows,
	}, nil
}

// FromStream drains the iterator into a new buffer.
// The stream is closed on all paths.
func FromStream(stream ResultStream) (*Buffer, error) {
	defer stream.Close()

	header := stream.Header()

	var rows []Row
	for stream.HasNext() {
		row, err := stream.Next()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return NewBuffer(header, rows)
}

// Header returns the column names. Callers must not modify the slice.
func (b *Buffer) Header() Header {
	return b.header
}

// Rows returns the data rows. Callers must not modify the slices.
func (b *Buffer) Rows() []Row {
	return b.rows
}

func (b *Buffer) Len() int {
	return len(b.rows)
}

// IsEmpty reports whether the buffer holds zero data rows.
// A buffer with a header but no rows is empty.
func (b *Buffer) IsEmpty() bool {
	return len(b.rows) == 0
}
