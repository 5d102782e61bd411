package registry

import (
	"errors"
	"sync"

	"shelf2door/internal/core/domain/model/customer"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/errs"
)

// ErrCustomerAlreadyRegistered is returned when registering a customer id twice.
var ErrCustomerAlreadyRegistered = errors.New("customer is already registered")

// CustomerDirectory is the read-mostly lookup of known customers. Customers
// are immutable after registration, so the directory hands out the aggregates
// directly.
type CustomerDirectory struct {
	mu        sync.RWMutex
	customers map[kernel.UUID]*customer.Customer
}

// NewCustomerDirectory creates an empty CustomerDirectory.
func NewCustomerDirectory() *CustomerDirectory {
	return &CustomerDirectory{
		customers: make(map[kernel.UUID]*customer.Customer),
	}
}

// Register adds a customer to the directory.
func (d *CustomerDirectory) Register(c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.customers[c.ID()]; ok {
		return ErrCustomerAlreadyRegistered
	}

	d.customers[c.ID()] = c
	return nil
}

// Get returns the customer with the given id.
func (d *CustomerDirectory) Get(customerID kernel.UUID) (*customer.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.customers[customerID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customerID", customerID.String())
	}
	return c, nil
}

// All returns every registered customer. Iteration order is unspecified.
func (d *CustomerDirectory) All() []*customer.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*customer.Customer, 0, len(d.customers))
	for _, c := range d.customers {
		out = append(out, c)
	}
	return out
}
