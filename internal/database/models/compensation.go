package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/coopmed/coopmed/internal/database/dbretry"
	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/coopmed/coopmed/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// CompensationModel handles database operations for compensation records.
type CompensationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCompensation creates a new CompensationModel instance.
func NewCompensation(db *bun.DB, logger *zap.Logger) *CompensationModel {
	return &CompensationModel{
		db:     db,
		logger: logger.Named("db_compensation"),
	}
}

// Create inserts a compensation record inside the caller's transaction.
func (m *CompensationModel) Create(ctx context.Context, tx bun.IDB, record *types.CompensationRecord) error {
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create compensation record: %w", err)
	}

	return nil
}

// GetForUpdate loads a compensation record inside the caller's transaction
// with a row lock, so concurrent settlement and restoration attempts on the
// same record serialize instead of losing updates.
func (m *CompensationModel) GetForUpdate(ctx context.Context, tx bun.IDB, id uuid.UUID) (*types.CompensationRecord, error) {
	var record types.CompensationRecord

	err := tx.NewSelect().
		Model(&record).
		Where("id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrCompensationNotFound
		}

		return nil, fmt.Errorf("failed to get compensation record: %w", err)
	}

	return &record, nil
}

// Update persists status and paid-at changes inside the caller's transaction.
func (m *CompensationModel) Update(ctx context.Context, tx bun.IDB, record *types.CompensationRecord) error {
	_, err := tx.NewUpdate().
		Model(record).
		Column("status", "paid_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update compensation record: %w", err)
	}

	return nil
}

// Delete removes a compensation record inside the caller's transaction.
func (m *CompensationModel) Delete(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*types.CompensationRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete compensation record: %w", err)
	}

	return nil
}

// AttachSnapshot writes the snapshot payload onto an existing record and
// reads it back to confirm the write stuck. Callers treat failure as a
// diagnostic, not an operation failure.
func (m *CompensationModel) AttachSnapshot(
	ctx context.Context, id uuid.UUID, snapshot *types.MemberSnapshot,
) error {
	// Marshal explicitly instead of relying on the dialect's struct
	// handling; the jsonb column has been written as both a structured
	// value and an encoded string by past driver versions.
	payload, err := sonic.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewUpdate().
			Model((*types.CompensationRecord)(nil)).
			Set("snapshot = ?", string(payload)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to attach snapshot: %w", err)
		}

		// Read back the written value to confirm it decodes.
		var stored types.CompensationRecord

		err = m.db.NewSelect().
			Model(&stored).
			Column("snapshot").
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to read back snapshot: %w", err)
		}

		if stored.Snapshot.IsEmpty() {
			return types.ErrSnapshotUnavailable
		}

		return nil
	})
}

// GetRawSnapshot reads the snapshot column without type mapping, inside the
// caller's transaction. The driver is inconsistent about jsonb payloads
// (structured value or raw encoded string), so the value is handed to the
// snapshot decoder as-is.
func (m *CompensationModel) GetRawSnapshot(ctx context.Context, tx bun.IDB, id uuid.UUID) (any, error) {
	var raw any

	err := tx.NewSelect().
		Model((*types.CompensationRecord)(nil)).
		Column("snapshot").
		Where("id = ?", id).
		Scan(ctx, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrCompensationNotFound
		}

		return nil, fmt.Errorf("failed to read raw snapshot: %w", err)
	}

	return raw, nil
}

// ProbeSnapshot reports whether the stored row has a non-null snapshot
// column. It exists purely to produce actionable operator diagnostics when
// a restore fails to decode a snapshot.
func (m *CompensationModel) ProbeSnapshot(ctx context.Context, id uuid.UUID) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		exists, err := m.db.NewSelect().
			Model((*types.CompensationRecord)(nil)).
			Where("id = ?", id).
			Where("snapshot IS NOT NULL").
			Exists(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("failed to probe snapshot column: %w", err)
		}

		return exists, nil
	})
}

// ListPending returns all pending compensation records, newest first,
// including any attached snapshot.
func (m *CompensationModel) ListPending(ctx context.Context) ([]*types.CompensationRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.CompensationRecord, error) {
		var records []*types.CompensationRecord

		err := m.db.NewSelect().
			Model(&records).
			Where("status = ?", enum.CompensationStatusPending).
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list pending compensation: %w", err)
		}

		return records, nil
	})
}
