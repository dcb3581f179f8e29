package types

import (
	"errors"
	"time"

	"github.com/coopmed/coopmed/internal/database/types/enum"
)

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrSelfRemoval       = errors.New("members cannot remove themselves")
	ErrRemovalIncomplete = errors.New("member record still present after removal")
)

// Member represents a cooperative participant.
type Member struct {
	ID           string          `bun:",pk"              json:"id"`
	Email        string          `bun:",notnull,unique"  json:"email"`
	Name         string          `bun:",notnull"         json:"name"`
	Role         enum.MemberRole `bun:",notnull"         json:"role"`
	PasswordHash string          `bun:",notnull"         json:"-"`

	Company     *string `bun:",nullzero" json:"company"`
	TaxID       *string `bun:",nullzero" json:"taxId"`
	Phone       *string `bun:",nullzero" json:"phone"`
	BankName    *string `bun:",nullzero" json:"bankName"`
	BankBranch  *string `bun:",nullzero" json:"bankBranch"`
	BankAccount *string `bun:",nullzero" json:"bankAccount"`

	NotifyByEmail bool `bun:",notnull,default:true"  json:"notifyByEmail"`
	NotifyBySMS   bool `bun:",notnull,default:false" json:"notifyBySms"`

	Contribution     float64 `bun:",notnull,default:0" json:"contribution"`
	CurrentValue     float64 `bun:",notnull,default:0" json:"currentValue"`
	Proceeds         float64 `bun:",notnull,default:0" json:"proceeds"`
	BalanceToReceive float64 `bun:",notnull,default:0" json:"balanceToReceive"`

	CreatedAt time.Time  `bun:",notnull"  json:"createdAt"`
	BannedAt  *time.Time `bun:",nullzero" json:"bannedAt"`
}

// PayableValue returns the amount owed to the member on removal.
// Negative balances are clamped to zero; the cooperative does not
// open compensation for members who owe money.
func (m *Member) PayableValue() float64 {
	if m.CurrentValue < 0 {
		return 0
	}

	return m.CurrentValue
}
