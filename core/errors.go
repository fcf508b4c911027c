package core

import "errors"

var (
	// ErrShape means a row's width doesn't match the header width.
	ErrShape = errors.New("row width does not match header width")
	// ErrFileAccess means the target path can't be opened or written.
	ErrFileAccess = errors.New("unable to access file")
	// ErrConnection means the database is unreachable.
	ErrConnection = errors.New("unable to connect to database")
	// ErrQuery means the database rejected a statement.
	ErrQuery = errors.New("query failed")
	// ErrBulkLoad means the bulk mechanism reported possible data loss.
	// Rows may already be committed - this is a loud failure on purpose.
	ErrBulkLoad = errors.New("bulk load failed")
)
