package enums

import "fmt"

// ContactMethod is how the customer prefers to be reached about a quote.
type ContactMethod string

const (
	ContactMethodCall     ContactMethod = "Call"
	ContactMethodWhatsApp ContactMethod = "WhatsApp"
)

var validContactMethods = []ContactMethod{
	ContactMethodCall,
	ContactMethodWhatsApp,
}

// String implements fmt.Stringer.
func (c ContactMethod) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContactMethod.
func (c ContactMethod) IsValid() bool {
	for _, candidate := range validContactMethods {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContactMethod converts the raw string to ContactMethod.
func ParseContactMethod(value string) (ContactMethod, error) {
	for _, candidate := range validContactMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact method %q", value)
}
