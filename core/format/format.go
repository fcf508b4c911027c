// Package format holds the file codecs.
// Each codec reads a whole buffer from a file and writes a whole buffer to
// a file - adding a format means adding a codec and a case in New.
package format

import (
	"fmt"

	"tablesync/core"
)

// Codec serializes buffers to files and back.
type Codec interface {
	// Extension is the file extension without the dot.
	Extension() string
	// Write serializes the buffer to path, overwriting an existing file.
	Write(path string, buf *core.Buffer) error
	// Read deserializes the file at path into a new buffer.
	Read(path string) (*core.Buffer, error)
}

// New returns the codec for a format kind ("csv" or "xlsx").
func New(kind string) (Codec, error) {
	switch kind {
	case "csv":
		return NewCSV(), nil
	case "xlsx":
		return NewXLSX(), nil
	default:
		return nil, fmt.Errorf("format: %q is not supported", kind)
	}
}
