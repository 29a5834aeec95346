package desk

import (
	"context"

	"github.com/AntonStoeckl/intellib/lending/core"
)

// DefaultBarcode is the book identifier used when no scanner is attached.
const DefaultBarcode core.BookIDString = "1234567891026"

// BarcodeSource supplies the identifier of the book at the desk, e.g. from a scanner.
type BarcodeSource interface {
	ScanBarcode(ctx context.Context) (core.BookIDString, error)
}

// FixedBarcode always yields the same identifier.
type FixedBarcode core.BookIDString

func (b FixedBarcode) ScanBarcode(context.Context) (core.BookIDString, error) {
	return core.BookIDString(b), nil
}
