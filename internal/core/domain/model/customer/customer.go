package customer

import (
	"errors"

	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/errs"
	"shelf2door/internal/pkg/guard"
)

// Domain errors for customer operations.
var (
	// ErrNameIsRequired is returned when attempting to create a customer without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a customer without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrAddressIsRequired is returned when attempting to create a customer without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrChannelsAreRequired is returned when a customer has no preferred notification channels.
	ErrChannelsAreRequired = errs.NewValueIsRequiredError("preferred channels")
	// ErrCustomerIsNotConstructed is returned when using an improperly initialized Customer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Customer represents a buyer who places delivery orders.
//
// Besides identity and contact details, a customer carries a delivery
// location (where orders are dropped off) and an ordered list of preferred
// notification channels. Every lifecycle notification for the customer's
// orders is fanned out to all preferred channels.
type Customer struct {
	id                kernel.UUID
	name              string
	phone             string
	address           string
	location          kernel.GeoPoint
	preferredChannels []Channel
	guard             guard.ConstructorGuard
}

// NewCustomer creates a Customer with the given identity, contact details,
// delivery location and preferred notification channels. At least one
// preferred channel is required; duplicates are rejected.
func NewCustomer(
	id kernel.UUID,
	name string,
	phone string,
	address string,
	location kernel.GeoPoint,
	preferredChannels []Channel,
) (*Customer, error) {
	customer := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setID(id),
		customer.setName(name),
		customer.setPhone(phone),
		customer.setAddress(address),
		customer.setLocation(location),
		customer.setPreferredChannels(preferredChannels),
	); err != nil {
		return nil, err
	}

	return customer, nil
}

// Validate checks that the Customer was created via NewCustomer.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// IsEqual compares two customers by identity.
func (c *Customer) IsEqual(other *Customer) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the unique identifier of the customer.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Phone returns the customer's phone number.
func (c *Customer) Phone() string {
	return c.phone
}

// Address returns the customer's delivery address text.
func (c *Customer) Address() string {
	return c.address
}

// Location returns the customer's delivery coordinates.
func (c *Customer) Location() kernel.GeoPoint {
	return c.location
}

// PreferredChannels returns the customer's notification channels in preference
// order. The returned slice is a copy.
func (c *Customer) PreferredChannels() []Channel {
	out := make([]Channel, len(c.preferredChannels))
	copy(out, c.preferredChannels)
	return out
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *Customer) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *Customer) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *Customer) setPreferredChannels(channels []Channel) error {
	if len(channels) == 0 {
		return ErrChannelsAreRequired
	}

	seen := make(map[Channel]struct{}, len(channels))
	for _, channel := range channels {
		if !channel.IsValid() {
			return errs.NewValueIsInvalidError("preferred channels")
		}
		if _, ok := seen[channel]; ok {
			return errs.NewValueIsInvalidError("preferred channels")
		}
		seen[channel] = struct{}{}
	}

	c.preferredChannels = make([]Channel, len(channels))
	copy(c.preferredChannels, channels)
	return nil
}
