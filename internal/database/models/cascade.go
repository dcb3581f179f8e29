package models

import (
	"context"
	"fmt"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// CascadeModel holds the per-table delete and detach operations used when a
// member is removed. Every method takes the caller's transaction; the
// removal service decides ordering and the transaction boundary.
type CascadeModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCascade creates a new CascadeModel instance.
func NewCascade(db *bun.DB, logger *zap.Logger) *CascadeModel {
	return &CascadeModel{
		db:     db,
		logger: logger.Named("db_cascade"),
	}
}

// GetSupplierIDs resolves the supplier records owned by a member. The
// supplier-scoped qualification tables reference these ids, not the member,
// so they must be resolved before anything is deleted.
func (m *CascadeModel) GetSupplierIDs(ctx context.Context, tx bun.IDB, memberID string) ([]int64, error) {
	var ids []int64

	err := tx.NewSelect().
		Model((*types.Supplier)(nil)).
		Column("id").
		Where("member_id = ?", memberID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier ids: %w", err)
	}

	return ids, nil
}

// DeleteSupplierScoped removes qualification requests and qualifications
// for the given supplier ids. Requests go first so no request ever points
// at a deleted qualification chain.
func (m *CascadeModel) DeleteSupplierScoped(ctx context.Context, tx bun.IDB, supplierIDs []int64) (int64, error) {
	if len(supplierIDs) == 0 {
		return 0, nil
	}

	var total int64

	for _, model := range []any{
		(*types.SupplierQualificationRequest)(nil),
		(*types.SupplierQualification)(nil),
	} {
		result, err := tx.NewDelete().
			Model(model).
			Where("supplier_id IN (?)", bun.In(supplierIDs)).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to delete supplier-scoped records: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}

		total += affected
	}

	return total, nil
}

// memberColumns maps each directly-owned dependent model to the columns
// that reference the member. Most tables use a single foreign key;
// transactions and inventory items reference the member from either side.
var memberColumns = []struct {
	model   any
	name    string
	columns []string
}{
	{(*types.Notification)(nil), "notifications", []string{"member_id"}},
	{(*types.SubstanceSuggestion)(nil), "substance_suggestions", []string{"member_id"}},
	{(*types.SupplierRequest)(nil), "supplier_requests", []string{"member_id"}},
	{(*types.Vote)(nil), "votes", []string{"member_id"}},
	{(*types.PurchaseItem)(nil), "purchase_items", []string{"member_id"}},
	{(*types.Quotation)(nil), "quotations", []string{"member_id"}},
	{(*types.FinancialMovement)(nil), "financial_movements", []string{"created_by"}},
	{(*types.BankDataRequest)(nil), "bank_data_requests", []string{"member_id"}},
	{(*types.ExtraUserRequest)(nil), "extra_user_requests", []string{"member_id"}},
	{(*types.ExitRequest)(nil), "exit_requests", []string{"member_id"}},
	{(*types.OfferProposal)(nil), "offer_proposals", []string{"proposer_id"}},
	{(*types.Transaction)(nil), "transactions", []string{"buyer_id", "seller_id"}},
	{(*types.MarketplaceOffer)(nil), "marketplace_offers", []string{"member_id"}},
	{(*types.RawMaterial)(nil), "raw_materials", []string{"created_by"}},
	{(*types.Supplier)(nil), "suppliers", []string{"member_id"}},
	{(*types.InventoryItem)(nil), "inventory_items", []string{"owner_id", "holder_id"}},
	{(*types.FlashDealClaim)(nil), "flash_deal_claims", []string{"member_id"}},
	{(*types.StrategicReserveClaim)(nil), "strategic_reserve_claims", []string{"member_id"}},
}

// DeleteDirectlyOwned removes every dependent record that references the
// member directly. Returns total rows deleted across all tables.
func (m *CascadeModel) DeleteDirectlyOwned(ctx context.Context, tx bun.IDB, memberID string) (int64, error) {
	var total int64

	for _, table := range memberColumns {
		query := tx.NewDelete().Model(table.model)
		for i, column := range table.columns {
			if i == 0 {
				query.Where("? = ?", bun.Ident(column), memberID)
			} else {
				query.WhereOr("? = ?", bun.Ident(column), memberID)
			}
		}

		result, err := query.Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to delete from %s: %w", table.name, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}

		total += affected
	}

	return total, nil
}

// DetachTransparencyNews nulls out the approver reference on transparency
// reports the member approved. The reports themselves are preserved; the
// approval history belongs to the cooperative.
func (m *CascadeModel) DetachTransparencyNews(ctx context.Context, tx bun.IDB, memberID string) (int64, error) {
	result, err := tx.NewUpdate().
		Model((*types.TransparencyNews)(nil)).
		Set("approved_by = NULL").
		Where("approved_by = ?", memberID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to detach transparency news: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return affected, nil
}
