package core

import "context"

type (
	// Row and Header are attributes of a ResultStream iterator
	Row    []any
	Header []string

	// ResultStream is a result from an executed query and has a form of an iterator
	ResultStream interface {
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

type (
	// Adapter is an object which allows to connect to a database via url
	Adapter interface {
		Connect(url string) (Gateway, error)
	}

	// Gateway is an interface for a specific database engine.
	// Export reads a whole table, Truncate empties it and BulkWrite loads a
	// buffer using the engine's native bulk mechanism.
	Gateway interface {
		Export(ctx context.Context, table string) (*Buffer, error)
		Truncate(ctx context.Context, table string) error
		BulkWrite(ctx context.Context, table string, buf *Buffer) error
		Close()
	}
)
