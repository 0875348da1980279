package enums

import "fmt"

// RelationKind names the binary relations the engagement toggle manages.
type RelationKind string

const (
	RelationKindSavedListing RelationKind = "saved_listing"
	RelationKindFollow       RelationKind = "follow"
)

var validRelationKinds = []RelationKind{
	RelationKindSavedListing,
	RelationKindFollow,
}

// String implements fmt.Stringer.
func (k RelationKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known RelationKind.
func (k RelationKind) IsValid() bool {
	for _, candidate := range validRelationKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseRelationKind converts raw input into a RelationKind.
func ParseRelationKind(value string) (RelationKind, error) {
	for _, candidate := range validRelationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid relation kind %q", value)
}
