// Package customer contains the Customer aggregate and the notification
// Channel enumeration. Customers receive order lifecycle notifications over
// their preferred channels and are the delivery targets of orders.
package customer
