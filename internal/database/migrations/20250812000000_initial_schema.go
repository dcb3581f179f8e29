package migrations

import (
	"context"
	"fmt"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Member)(nil),
			(*types.CompensationRecord)(nil),
			(*types.Notification)(nil),
			(*types.SubstanceSuggestion)(nil),
			(*types.SupplierRequest)(nil),
			(*types.Vote)(nil),
			(*types.PurchaseItem)(nil),
			(*types.Quotation)(nil),
			(*types.FinancialMovement)(nil),
			(*types.BankDataRequest)(nil),
			(*types.ExtraUserRequest)(nil),
			(*types.ExitRequest)(nil),
			(*types.OfferProposal)(nil),
			(*types.Transaction)(nil),
			(*types.MarketplaceOffer)(nil),
			(*types.RawMaterial)(nil),
			(*types.Supplier)(nil),
			(*types.SupplierQualification)(nil),
			(*types.SupplierQualificationRequest)(nil),
			(*types.TransparencyNews)(nil),
			(*types.InventoryItem)(nil),
			(*types.FlashDealClaim)(nil),
			(*types.StrategicReserveClaim)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.StrategicReserveClaim)(nil),
			(*types.FlashDealClaim)(nil),
			(*types.InventoryItem)(nil),
			(*types.TransparencyNews)(nil),
			(*types.SupplierQualificationRequest)(nil),
			(*types.SupplierQualification)(nil),
			(*types.Supplier)(nil),
			(*types.RawMaterial)(nil),
			(*types.MarketplaceOffer)(nil),
			(*types.Transaction)(nil),
			(*types.OfferProposal)(nil),
			(*types.ExitRequest)(nil),
			(*types.ExtraUserRequest)(nil),
			(*types.BankDataRequest)(nil),
			(*types.FinancialMovement)(nil),
			(*types.Quotation)(nil),
			(*types.PurchaseItem)(nil),
			(*types.Vote)(nil),
			(*types.SupplierRequest)(nil),
			(*types.SubstanceSuggestion)(nil),
			(*types.Notification)(nil),
			(*types.CompensationRecord)(nil),
			(*types.Member)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}
