package enums

import "fmt"

// QuoteStatus describes the allowed values for the `status` column in quotes.
type QuoteStatus string

const (
	QuoteStatusReceived       QuoteStatus = "Received"
	QuoteStatusDesigning      QuoteStatus = "Designing"
	QuoteStatusPrinting       QuoteStatus = "Printing"
	QuoteStatusReady          QuoteStatus = "Ready"
	QuoteStatusOutForDelivery QuoteStatus = "OutForDelivery"
	QuoteStatusCompleted      QuoteStatus = "Completed"
	QuoteStatusCancelled      QuoteStatus = "Cancelled"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusReceived,
	QuoteStatusDesigning,
	QuoteStatusPrinting,
	QuoteStatusReady,
	QuoteStatusOutForDelivery,
	QuoteStatusCompleted,
	QuoteStatusCancelled,
}

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value matches the canonical quote status enum.
func (q QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts the raw string to QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}

// QuoteStatuses returns the full set of statuses in workflow order.
func QuoteStatuses() []QuoteStatus {
	out := make([]QuoteStatus, len(validQuoteStatuses))
	copy(out, validQuoteStatuses)
	return out
}
