package types

import (
	"errors"
	"time"

	"github.com/coopmed/coopmed/internal/database/types/enum"
	"github.com/google/uuid"
)

var (
	ErrCompensationNotFound   = errors.New("compensation record not found")
	ErrNotRemovalCompensation = errors.New("only removal compensation can be undone")
	ErrCompensationSettled    = errors.New("compensation already settled")
	ErrCompensationNotSettled = errors.New("compensation has not been settled")
)

// CompensationRecord is a ledger entry for money owed to a member. Records
// with the removed reason double as undo tokens: they embed a snapshot of
// the removed member and can be consumed to restore them.
type CompensationRecord struct {
	ID uuid.UUID `bun:",pk" json:"id"`

	// Identity echo of the member at the time the record was created.
	// The member row itself may no longer exist.
	MemberID   string  `bun:",notnull"  json:"memberId"`
	MemberName string  `bun:",notnull"  json:"memberName"`
	Company    *string `bun:",nullzero" json:"company"`
	TaxID      *string `bun:",nullzero" json:"taxId"`

	Amount float64                 `bun:",notnull"  json:"amount"`
	Reason enum.CompensationReason `bun:",notnull"  json:"reason"`
	Status enum.CompensationStatus `bun:",notnull"  json:"status"`
	PaidAt *time.Time              `bun:",nullzero" json:"paidAt"`

	Snapshot *MemberSnapshot `bun:"type:jsonb,nullzero" json:"snapshot"`

	CreatedAt time.Time `bun:",notnull" json:"createdAt"`
}

// CanSettle reports whether the record may transition to paid.
func (r *CompensationRecord) CanSettle() error {
	if r.Status == enum.CompensationStatusPaid {
		return ErrCompensationSettled
	}

	return nil
}

// CanRevert reports whether a settlement may be rolled back to pending.
func (r *CompensationRecord) CanRevert() error {
	if r.Status != enum.CompensationStatusPaid {
		return ErrCompensationNotSettled
	}

	return nil
}

// CanRestore reports whether the record may be consumed to recreate the
// removed member. Paid records cannot be restored regardless of reason.
func (r *CompensationRecord) CanRestore() error {
	if r.Reason != enum.CompensationReasonRemoved {
		return ErrNotRemovalCompensation
	}

	if r.Status != enum.CompensationStatusPending {
		return ErrCompensationSettled
	}

	return nil
}
