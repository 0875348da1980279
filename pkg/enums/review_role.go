package enums

import "fmt"

// ReviewRole records which side of a transaction wrote a mutual review.
type ReviewRole string

const (
	ReviewRoleBuyer  ReviewRole = "BUYER"
	ReviewRoleSeller ReviewRole = "SELLER"
)

var validReviewRoles = []ReviewRole{
	ReviewRoleBuyer,
	ReviewRoleSeller,
}

// String implements fmt.Stringer.
func (r ReviewRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReviewRole.
func (r ReviewRole) IsValid() bool {
	for _, candidate := range validReviewRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReviewRole converts raw input into a ReviewRole.
func ParseReviewRole(value string) (ReviewRole, error) {
	for _, candidate := range validReviewRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid review role %q", value)
}
