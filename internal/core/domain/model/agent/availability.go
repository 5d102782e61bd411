package agent

// Availability represents the assignment state of a delivery agent.
// The zero value AvailabilityUnknown is invalid.
type Availability int

const (
	// AvailabilityUnknown is the zero value, representing an invalid state.
	AvailabilityUnknown Availability = iota
	// Available means the agent can accept new orders, capacity permitting.
	Available
	// Busy means the agent currently holds at least one assigned order.
	Busy
	// Offline means the agent is excluded from assignment until reset.
	Offline
)

// String returns the lowercase string representation of the availability.
func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Busy:
		return "busy"
	case Offline:
		return "offline"
	case AvailabilityUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}
