package report

import "errors"

var (
	ErrNoDataFound       = errors.New("no data found for the specified criteria")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
