package customer

import (
	"fmt"

	"shelf2door/internal/pkg/errs"
)

// Channel represents a notification delivery channel.
// The zero value ChannelUnknown is invalid.
type Channel int

const (
	// ChannelUnknown is the zero value, representing an invalid channel.
	ChannelUnknown Channel = iota
	// ChannelSMS delivers notifications as text messages.
	ChannelSMS
	// ChannelWhatsApp delivers notifications as WhatsApp messages.
	ChannelWhatsApp
	// ChannelPush delivers notifications as mobile push notifications.
	ChannelPush
)

var channelNames = map[Channel]string{
	ChannelUnknown:  "unknown",
	ChannelSMS:      "sms",
	ChannelWhatsApp: "whatsapp",
	ChannelPush:     "push",
}

// String returns the lowercase string representation of the channel.
func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether the channel is one of the known delivery channels.
func (c Channel) IsValid() bool {
	return c == ChannelSMS || c == ChannelWhatsApp || c == ChannelPush
}

// ParseChannel converts a string to a Channel.
// Returns an error for unrecognized channel names.
func ParseChannel(s string) (Channel, error) {
	for channel, name := range channelNames {
		if name == s && channel != ChannelUnknown {
			return channel, nil
		}
	}
	return ChannelUnknown, errs.NewValueIsInvalidErrorWithCause(
		"channel is invalid",
		fmt.Errorf("%s is not a valid channel", s),
	)
}
