// Package shelf contains the shelf stock report reported by in-store sensors.
// The core only records and serves these reports; replenishment decisions are
// made elsewhere.
package shelf

import (
	"time"

	"shelf2door/internal/pkg/errs"
)

// StockReport is the latest known stock level of one shelf.
type StockReport struct {
	ShelfID     string
	ProductName string
	Quantity    int
	ReportedAt  time.Time
}

// Validate checks the report fields.
func (r StockReport) Validate() error {
	if r.ShelfID == "" {
		return errs.NewValueIsRequiredError("shelf id")
	}
	if r.ProductName == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	if r.Quantity < 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	if r.ReportedAt.IsZero() {
		return errs.NewValueIsRequiredError("reported at")
	}
	return nil
}
