package invoiceform

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [ChromeCapturer].
	ErrClosed = errors.New("invoiceform: capturer is closed")

	// ErrEmptyCapture is returned when the captured image has no pixels.
	ErrEmptyCapture = errors.New("invoiceform: captured image is empty")

	// ErrUnknownField is returned for an invoice or line item field name
	// that does not exist.
	ErrUnknownField = errors.New("invoiceform: unknown field")

	// ErrMargins is returned when page margins leave no room for the
	// captured image.
	ErrMargins = errors.New("invoiceform: margins leave no printable area")

	// ErrItemIndex is returned when a line item index is out of range.
	ErrItemIndex = errors.New("invoiceform: line item index out of range")
)
