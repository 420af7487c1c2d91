package model

// RejectReason is the closed set of reasons a CSV line can be refused for.
type RejectReason string

// Reject reasons.
const (
	RejectTooFewFields   RejectReason = "too_few_fields"
	RejectInvalidDate    RejectReason = "invalid_date"
	RejectInvalidProduct RejectReason = "invalid_product"
	RejectInvalidAmount  RejectReason = "invalid_amount"
	RejectDuplicate      RejectReason = "duplicate"
)

var rejectDescriptions = map[RejectReason]string{
	RejectTooFewFields:   "fewer than 3 fields",
	RejectInvalidDate:    "invalid date",
	RejectInvalidProduct: "product empty or too long",
	RejectInvalidAmount:  "invalid amount (must be positive, max 99,999,999.99)",
	RejectDuplicate:      "duplicate line in the same upload",
}

// Description returns a human readable explanation of the reason.
func (r RejectReason) Description() string {
	if d, ok := rejectDescriptions[r]; ok {
		return d
	}
	return string(r)
}

// RejectedLine describes an input line that did not become a sale.
type RejectedLine struct {
	Reason RejectReason `json:"reason"`
	Raw    string       `json:"raw"`
	Line   int          `json:"line"`
}
