package enum

import "fmt"

// CompensationReason explains why a compensation record was opened.
// Values are stored as text in the compensations table.
type CompensationReason string

const (
	// CompensationReasonRemoved marks compensation created when a member is
	// removed from the cooperative. Only these records carry a snapshot and
	// can be used to restore the member.
	CompensationReasonRemoved CompensationReason = "removed"
	// CompensationReasonRefund marks compensation for a refunded purchase.
	CompensationReasonRefund CompensationReason = "refund"
	// CompensationReasonProceeds marks compensation for distributed proceeds.
	CompensationReasonProceeds CompensationReason = "proceeds"
)

// ParseCompensationReason converts a stored string into a CompensationReason.
func ParseCompensationReason(s string) (CompensationReason, error) {
	switch r := CompensationReason(s); r {
	case CompensationReasonRemoved, CompensationReasonRefund, CompensationReasonProceeds:
		return r, nil
	default:
		return "", fmt.Errorf("unknown compensation reason %q", s)
	}
}

// CompensationStatus tracks the settlement state of a compensation record.
type CompensationStatus string

const (
	// CompensationStatusPending means the amount has not been paid out yet.
	CompensationStatusPending CompensationStatus = "pending"
	// CompensationStatusPaid means the amount has been settled.
	CompensationStatusPaid CompensationStatus = "paid"
)

// ParseCompensationStatus converts a stored string into a CompensationStatus.
func ParseCompensationStatus(s string) (CompensationStatus, error) {
	switch st := CompensationStatus(s); st {
	case CompensationStatusPending, CompensationStatusPaid:
		return st, nil
	default:
		return "", fmt.Errorf("unknown compensation status %q", s)
	}
}
