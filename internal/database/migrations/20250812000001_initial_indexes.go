package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// Foreign-key columns the removal cascade filters on.
		indexes := []struct {
			table  string
			column string
		}{
			{"compensation_records", "member_id"},
			{"compensation_records", "status"},
			{"notifications", "member_id"},
			{"substance_suggestions", "member_id"},
			{"supplier_requests", "member_id"},
			{"votes", "member_id"},
			{"purchase_items", "member_id"},
			{"quotations", "member_id"},
			{"financial_movements", "created_by"},
			{"bank_data_requests", "member_id"},
			{"extra_user_requests", "member_id"},
			{"exit_requests", "member_id"},
			{"offer_proposals", "proposer_id"},
			{"transactions", "buyer_id"},
			{"transactions", "seller_id"},
			{"marketplace_offers", "member_id"},
			{"raw_materials", "created_by"},
			{"suppliers", "member_id"},
			{"supplier_qualifications", "supplier_id"},
			{"supplier_qualification_requests", "supplier_id"},
			{"transparency_news", "approved_by"},
			{"inventory_items", "owner_id"},
			{"inventory_items", "holder_id"},
			{"flash_deal_claims", "member_id"},
			{"strategic_reserve_claims", "member_id"},
		}

		for _, idx := range indexes {
			_, err := db.NewRaw(fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s)",
				idx.table, idx.column, idx.table, idx.column,
			)).Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create index on %s.%s: %w", idx.table, idx.column, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Indexes are dropped with their tables; nothing to roll back.
		return nil
	})
}
