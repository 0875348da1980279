package enums

import "fmt"

// ListingStatus tracks a listing through its sale lifecycle.
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "AVAILABLE"
	ListingStatusReserved  ListingStatus = "RESERVED"
	ListingStatusSold      ListingStatus = "SOLD"
)

var validListingStatuses = []ListingStatus{
	ListingStatusAvailable,
	ListingStatusReserved,
	ListingStatusSold,
}

// String implements fmt.Stringer.
func (s ListingStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ListingStatus.
func (s ListingStatus) IsValid() bool {
	for _, candidate := range validListingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may legally move to next.
// The lifecycle only moves forward: AVAILABLE→RESERVED→SOLD or AVAILABLE→SOLD.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	switch s {
	case ListingStatusAvailable:
		return next == ListingStatusReserved || next == ListingStatusSold
	case ListingStatusReserved:
		return next == ListingStatusSold
	default:
		return false
	}
}

// ParseListingStatus converts raw input into a ListingStatus.
func ParseListingStatus(value string) (ListingStatus, error) {
	for _, candidate := range validListingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing status %q", value)
}
