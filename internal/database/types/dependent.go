package types

import "time"

// Dependent records reference a member either directly by id or, for
// supplier-owned records, indirectly through a supplier owned by the
// member. All of them are deleted when the member is removed, except
// TransparencyNews which is detached instead (approval history belongs to
// the cooperative, not the member).

// Notification is a message delivered to a member.
type Notification struct {
	ID        int64      `bun:",pk,autoincrement" json:"id"`
	MemberID  string     `bun:",notnull"          json:"memberId"`
	Title     string     `bun:",notnull"          json:"title"`
	Body      string     `bun:",notnull"          json:"body"`
	ReadAt    *time.Time `bun:",nullzero"         json:"readAt"`
	CreatedAt time.Time  `bun:",notnull"          json:"createdAt"`
}

// SubstanceSuggestion is a member's proposal to stock a new substance.
type SubstanceSuggestion struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	Substance string    `bun:",notnull"          json:"substance"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// SupplierRequest is a member's request to add a new supplier.
type SupplierRequest struct {
	ID           int64     `bun:",pk,autoincrement" json:"id"`
	MemberID     string    `bun:",notnull"          json:"memberId"`
	SupplierName string    `bun:",notnull"          json:"supplierName"`
	CreatedAt    time.Time `bun:",notnull"          json:"createdAt"`
}

// Vote is a member's vote in a cooperative poll.
type Vote struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	PollID    int64     `bun:",notnull"          json:"pollId"`
	Choice    string    `bun:",notnull"          json:"choice"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// PurchaseItem is a member's line item in a collective purchase.
type PurchaseItem struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	OfferID   int64     `bun:",notnull"          json:"offerId"`
	Quantity  int       `bun:",notnull"          json:"quantity"`
	UnitPrice float64   `bun:",notnull"          json:"unitPrice"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// Quotation is a member's price quotation request.
type Quotation struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	Substance string    `bun:",notnull"          json:"substance"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// FinancialMovement is a ledger movement authored by a member.
type FinancialMovement struct {
	ID          int64     `bun:",pk,autoincrement" json:"id"`
	CreatedBy   string    `bun:",notnull"          json:"createdBy"`
	Amount      float64   `bun:",notnull"          json:"amount"`
	Description string    `bun:",notnull"          json:"description"`
	CreatedAt   time.Time `bun:",notnull"          json:"createdAt"`
}

// BankDataRequest is a member's pending banking-detail change.
type BankDataRequest struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// ExtraUserRequest is a member's request for an additional portal login.
type ExtraUserRequest struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	Email     string    `bun:",notnull"          json:"email"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// ExitRequest is a member's request to leave the cooperative.
type ExitRequest struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	Reason    string    `bun:",notnull"          json:"reason"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// OfferProposal is a marketplace offer proposed by a member.
type OfferProposal struct {
	ID         int64     `bun:",pk,autoincrement" json:"id"`
	ProposerID string    `bun:",notnull"          json:"proposerId"`
	Substance  string    `bun:",notnull"          json:"substance"`
	CreatedAt  time.Time `bun:",notnull"          json:"createdAt"`
}

// Transaction is a completed marketplace trade between two members.
type Transaction struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	BuyerID   string    `bun:",notnull"          json:"buyerId"`
	SellerID  string    `bun:",notnull"          json:"sellerId"`
	Amount    float64   `bun:",notnull"          json:"amount"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// MarketplaceOffer is a member's listing on the marketplace.
type MarketplaceOffer struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	Substance string    `bun:",notnull"          json:"substance"`
	Price     float64   `bun:",notnull"          json:"price"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// RawMaterial is a raw material registered by a member.
type RawMaterial struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	CreatedBy string    `bun:",notnull"          json:"createdBy"`
	Name      string    `bun:",notnull"          json:"name"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// Supplier is a supplier record owned by a member. Qualification records
// hang off the supplier, not the member, which is why the reaper resolves
// supplier ids first.
type Supplier struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	Name      string    `bun:",notnull"          json:"name"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// SupplierQualification is a granted qualification for a supplier.
type SupplierQualification struct {
	ID         int64     `bun:",pk,autoincrement" json:"id"`
	SupplierID int64     `bun:",notnull"          json:"supplierId"`
	Category   string    `bun:",notnull"          json:"category"`
	CreatedAt  time.Time `bun:",notnull"          json:"createdAt"`
}

// SupplierQualificationRequest is a pending qualification request.
type SupplierQualificationRequest struct {
	ID         int64     `bun:",pk,autoincrement" json:"id"`
	SupplierID int64     `bun:",notnull"          json:"supplierId"`
	Category   string    `bun:",notnull"          json:"category"`
	CreatedAt  time.Time `bun:",notnull"          json:"createdAt"`
}

// TransparencyNews is a published transparency report. The approver
// reference is organizational history, so removal nulls it out instead of
// deleting the row.
type TransparencyNews struct {
	ID         int64     `bun:",pk,autoincrement" json:"id"`
	Title      string    `bun:",notnull"          json:"title"`
	Body       string    `bun:",notnull"          json:"body"`
	ApprovedBy *string   `bun:",nullzero"         json:"approvedBy"`
	CreatedAt  time.Time `bun:",notnull"          json:"createdAt"`
}

// InventoryItem is a stocked item; a member can be its owner, its current
// holder, or both.
type InventoryItem struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	OwnerID   string    `bun:",notnull"          json:"ownerId"`
	HolderID  string    `bun:",notnull"          json:"holderId"`
	Substance string    `bun:",notnull"          json:"substance"`
	Quantity  int       `bun:",notnull"          json:"quantity"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// FlashDealClaim is a member's claim on a flash deal.
type FlashDealClaim struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	DealID    int64     `bun:",notnull"          json:"dealId"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}

// StrategicReserveClaim is a member's claim on the strategic reserve.
type StrategicReserveClaim struct {
	ID        int64     `bun:",pk,autoincrement" json:"id"`
	MemberID  string    `bun:",notnull"          json:"memberId"`
	ReserveID int64     `bun:",notnull"          json:"reserveId"`
	CreatedAt time.Time `bun:",notnull"          json:"createdAt"`
}
