package types

import (
	"time"

	dbTypes "github.com/coopmed/coopmed/internal/database/types"
)

// RemovalResponse reports the outcome of a member removal.
type RemovalResponse struct {
	Message          string  `json:"message"`
	CompensationID   string  `json:"compensationId"`
	Amount           float64 `json:"amount"`
	SnapshotCaptured bool    `json:"snapshotCaptured"`
}

// Member represents a cooperative member in API responses.
type Member struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	Company          *string    `json:"company"`
	TaxID            *string    `json:"taxId"`
	Phone            *string    `json:"phone"`
	Contribution     float64    `json:"contribution"`
	CurrentValue     float64    `json:"currentValue"`
	Proceeds         float64    `json:"proceeds"`
	BalanceToReceive float64    `json:"balanceToReceive"`
	CreatedAt        time.Time  `json:"createdAt"`
	BannedAt         *time.Time `json:"bannedAt"`
}

// MemberResponse wraps a member payload.
type MemberResponse struct {
	Member *Member `json:"member"`
}

// Compensation represents a compensation ledger entry in API responses.
type Compensation struct {
	ID          string     `json:"id"`
	MemberID    string     `json:"memberId"`
	MemberName  string     `json:"memberName"`
	Company     *string    `json:"company"`
	TaxID       *string    `json:"taxId"`
	Amount      float64    `json:"amount"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paidAt"`
	HasSnapshot bool       `json:"hasSnapshot"`
	// Snapshot is the captured member state attached to removal records.
	// Nil when the attach write failed at removal time.
	Snapshot  *dbTypes.MemberSnapshot `json:"snapshot"`
	CreatedAt time.Time               `json:"createdAt"`
}

// CompensationResponse wraps a single compensation record.
type CompensationResponse struct {
	Record *Compensation `json:"record"`
}

// CompensationListResponse wraps a list of compensation records.
type CompensationListResponse struct {
	Records []*Compensation `json:"records"`
}
