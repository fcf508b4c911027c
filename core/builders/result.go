package builders

import "tablesync/core"

// Result fills the core.ResultStream contract for the sql gateways.
// Close releases the underlying rows and stops any further iteration.
type Result struct {
	header  core.Header
	next    func() (core.Row, error)
	hasNext func() bool
	close   func()
}

func NewResult(header core.Header, next func() (core.Row, error), hasNext func() bool, close func()) *Result {
	return &Result{
		header:  header,
		next:    next,
		hasNext: hasNext,
		close:   close,
	}
}

func (r *Result) Header() core.Header {
	return r.header
}

func (r *Result) HasNext() bool {
	return r.hasNext()
}

func (r *Result) Next() (core.Row, error) {
	row, err := r.next()
	if err != nil || row == nil {
		r.Close()
		return nil, err
	}
	return row, nil
}

func (r *Result) Close() {
	r.close()
	r.hasNext = func() bool {
		return false
	}
}
