package enums

import "fmt"

// DeliveryOption describes how a listing can change hands.
type DeliveryOption string

const (
	DeliveryOptionMeetup   DeliveryOption = "MEETUP"
	DeliveryOptionDelivery DeliveryOption = "DELIVERY"
	DeliveryOptionPickup   DeliveryOption = "PICKUP"
)

var validDeliveryOptions = []DeliveryOption{
	DeliveryOptionMeetup,
	DeliveryOptionDelivery,
	DeliveryOptionPickup,
}

// String implements fmt.Stringer.
func (d DeliveryOption) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryOption.
func (d DeliveryOption) IsValid() bool {
	for _, candidate := range validDeliveryOptions {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryOption converts raw input into a DeliveryOption.
func ParseDeliveryOption(value string) (DeliveryOption, error) {
	for _, candidate := range validDeliveryOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery option %q", value)
}
