package order

import (
	"errors"

	"shelf2door/internal/pkg/errs"
	"shelf2door/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for line item operations.
var (
	// ErrItemNameIsRequired is returned when creating a line item without a product name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("product name")
	// ErrItemPriceIsInvalid is returned when a line item's unit price is not positive.
	ErrItemPriceIsInvalid = errs.NewValueIsInvalidError("unit price")
	// ErrItemQuantityIsInvalid is returned when a line item's quantity is not positive.
	ErrItemQuantityIsInvalid = errs.NewValueIsInvalidError("quantity")
	// ErrLineItemIsNotConstructed is returned when using an improperly initialized LineItem.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// LineItem is an immutable order line: a product name, a unit price and a
// quantity. Prices use decimal arithmetic so totals like 4.99×2 + 2.49 come
// out exact.
type LineItem struct {
	productName string
	unitPrice   decimal.Decimal
	quantity    int
	guard       guard.ConstructorGuard
}

// NewLineItem creates a LineItem with a positive unit price and quantity.
func NewLineItem(productName string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductName(productName),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate checks that the LineItem was created via NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductName returns the product name.
func (i LineItem) ProductName() string {
	return i.productName
}

// UnitPrice returns the price of a single unit.
func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Quantity returns the ordered unit count.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Subtotal returns unit price × quantity.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *LineItem) setProductName(productName string) error {
	if productName == "" {
		return ErrItemNameIsRequired
	}

	i.productName = productName
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice decimal.Decimal) error {
	if !unitPrice.IsPositive() {
		return ErrItemPriceIsInvalid
	}

	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrItemQuantityIsInvalid
	}

	i.quantity = quantity
	return nil
}
