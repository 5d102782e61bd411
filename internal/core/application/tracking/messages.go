package tracking

import (
	"fmt"

	"shelf2door/internal/core/domain/model/agent"
	"shelf2door/internal/core/domain/model/customer"
	"shelf2door/internal/core/domain/model/order"
)

// Customer-facing link bases. The hosts are placeholders for the simulated
// notification content; nothing in the core resolves them.
const (
	trackingURLBase = "http://track.s2d.com/"
	ratingURLBase   = "http://rate.s2d.com/"
)

func trackingURL(o *order.Order) string {
	return trackingURLBase + o.ID().String()
}

func ratingURL(o *order.Order) string {
	return ratingURLBase + o.ID().String()
}

func etaText(etaMinutes *int) string {
	if etaMinutes == nil {
		return "calculating..."
	}
	return fmt.Sprintf("~%d minutes", *etaMinutes)
}

func placedMessage(c *customer.Customer, o *order.Order) (string, string) {
	title := "Order Confirmation"
	body := fmt.Sprintf(
		"Hi %s! Your order #%s has been placed. %d item(s), total $%s. Track it at %s",
		c.Name(), o.ID().Short(), len(o.Items()), o.Total().StringFixed(2), trackingURL(o))
	return title, body
}

func assignedMessage(c *customer.Customer, o *order.Order, a agent.Snapshot, etaMinutes *int) (string, string) {
	title := "Driver Assigned"
	body := fmt.Sprintf(
		"Good news %s! %s (%s, %s) is handling your order #%s. Estimated arrival: %s.",
		c.Name(), a.Name, a.Vehicle, a.Phone, o.ID().Short(), etaText(etaMinutes))
	return title, body
}

func statusMessage(c *customer.Customer, o *order.Order, status order.Status) (string, string) {
	switch status {
	case order.Preparing:
		return "Order Update", fmt.Sprintf(
			"%s, your order #%s is being prepared.", c.Name(), o.ID().Short())
	case order.OutForDelivery:
		return "Out for Delivery", fmt.Sprintf(
			"%s, your order #%s is out for delivery! Follow it at %s",
			c.Name(), o.ID().Short(), trackingURL(o))
	case order.Cancelled:
		return "Order Cancelled", fmt.Sprintf(
			"%s, your order #%s has been cancelled.", c.Name(), o.ID().Short())
	default:
		return "Order Update", fmt.Sprintf(
			"%s, your order #%s is now %s.", c.Name(), o.ID().Short(), status)
	}
}

func nearbyMessage(c *customer.Customer, o *order.Order, agentName string, distanceKm float64) (string, string) {
	title := "Driver Nearby"
	body := fmt.Sprintf(
		"%s, %s is %.1f km away with your order #%s. Get ready!",
		c.Name(), agentName, distanceKm, o.ID().Short())
	return title, body
}

func deliveredMessage(c *customer.Customer, o *order.Order, onTime bool) (string, string) {
	title := "Order Delivered"
	punctuality := "right on time"
	if !onTime {
		punctuality = "later than estimated, sorry for the delay"
	}
	body := fmt.Sprintf(
		"%s, your order #%s has been delivered %s. Total charged: $%s. Rate your experience: %s",
		c.Name(), o.ID().Short(), punctuality, o.Total().StringFixed(2), ratingURL(o))
	return title, body
}
