package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coopmed/coopmed/internal/database/dbretry"
	"github.com/coopmed/coopmed/internal/database/models"
	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/coopmed/coopmed/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// CompensationService handles the compensation ledger lifecycle: settlement,
// settlement rollback, and consuming removal records to restore members.
type CompensationService struct {
	compensations compensationStore
	members       memberStore
	runTx         txFunc
	logger        *zap.Logger
}

// NewCompensation creates a new compensation service.
func NewCompensation(
	db *bun.DB,
	compensations *models.CompensationModel,
	members *models.MemberModel,
	logger *zap.Logger,
) *CompensationService {
	return &CompensationService{
		compensations: compensations,
		members:       members,
		runTx: func(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
			return dbretry.Transaction(ctx, db, fn)
		},
		logger: logger.Named("compensation_service"),
	}
}

// Undo restores a removed member from the snapshot embedded in a pending
// removal compensation record, then deletes the record. Both happen in one
// transaction; a failure anywhere leaves the record untouched and no member
// recreated.
//
// Restoration is identity and attribute level only: dependent records
// deleted during removal are not regenerated.
func (s *CompensationService) Undo(ctx context.Context, id uuid.UUID) (*types.Member, error) {
	var restored *types.Member

	err := s.runTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.compensations.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := record.CanRestore(); err != nil {
			return err
		}

		// The stored payload shape varies by driver version, so read the
		// column raw and let the decoder try each form. The snapshot
		// already mapped onto the record is the last-resort fallback.
		raw, err := s.compensations.GetRawSnapshot(ctx, tx, id)
		if err != nil {
			return err
		}

		snapshot, source, err := types.DecodeSnapshot(raw, record.Snapshot)
		if err != nil {
			s.probeSnapshot(ctx, id)

			return err
		}

		member := snapshot.RestoreMember()

		if err := s.members.Insert(ctx, tx, member); err != nil {
			return err
		}

		if err := s.compensations.Delete(ctx, tx, id); err != nil {
			return err
		}

		s.logger.Info("Member restored from snapshot",
			zap.String("memberId", member.ID),
			zap.String("compensationId", id.String()),
			zap.String("snapshotSource", string(source)))

		restored = member

		return nil
	})
	if err != nil {
		if isCompensationSentinel(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to undo removal: %w", err)
	}

	return restored, nil
}

// probeSnapshot logs whether the stored row actually holds a snapshot
// value. Purely diagnostic: it tells an operator whether the payload was
// never written or was written but does not decode.
func (s *CompensationService) probeSnapshot(ctx context.Context, id uuid.UUID) {
	hasValue, err := s.compensations.ProbeSnapshot(ctx, id)
	if err != nil {
		s.logger.Error("Snapshot probe failed",
			zap.String("compensationId", id.String()),
			zap.Error(err))

		return
	}

	if hasValue {
		s.logger.Error("Snapshot column holds a value but it does not decode",
			zap.String("compensationId", id.String()))
	} else {
		s.logger.Error("Snapshot column is empty; the attach write likely failed at removal time",
			zap.String("compensationId", id.String()))
	}
}

// Settle marks a pending compensation record as paid.
func (s *CompensationService) Settle(ctx context.Context, id uuid.UUID) (*types.CompensationRecord, error) {
	return s.transition(ctx, id, func(record *types.CompensationRecord) error {
		if err := record.CanSettle(); err != nil {
			return err
		}

		now := time.Now().UTC()
		record.Status = enum.CompensationStatusPaid
		record.PaidAt = &now

		return nil
	})
}

// RevertSettlement returns a paid compensation record to pending and clears
// the paid-at timestamp.
func (s *CompensationService) RevertSettlement(ctx context.Context, id uuid.UUID) (*types.CompensationRecord, error) {
	return s.transition(ctx, id, func(record *types.CompensationRecord) error {
		if err := record.CanRevert(); err != nil {
			return err
		}

		record.Status = enum.CompensationStatusPending
		record.PaidAt = nil

		return nil
	})
}

// transition applies a status change under a row lock.
func (s *CompensationService) transition(
	ctx context.Context, id uuid.UUID, apply func(*types.CompensationRecord) error,
) (*types.CompensationRecord, error) {
	var updated *types.CompensationRecord

	err := s.runTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.compensations.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := apply(record); err != nil {
			return err
		}

		if err := s.compensations.Update(ctx, tx, record); err != nil {
			return err
		}

		updated = record

		return nil
	})
	if err != nil {
		if isCompensationSentinel(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to update compensation record: %w", err)
	}

	return updated, nil
}

// ListPending returns all pending compensation records with any attached
// snapshot, for the admin payout view.
func (s *CompensationService) ListPending(ctx context.Context) ([]*types.CompensationRecord, error) {
	return s.compensations.ListPending(ctx)
}

// isCompensationSentinel reports whether err is one of the client-facing
// sentinels that must not be wrapped into an internal failure message.
func isCompensationSentinel(err error) bool {
	return errors.Is(err, types.ErrCompensationNotFound) ||
		errors.Is(err, types.ErrNotRemovalCompensation) ||
		errors.Is(err, types.ErrCompensationSettled) ||
		errors.Is(err, types.ErrCompensationNotSettled) ||
		errors.Is(err, types.ErrSnapshotUnavailable)
}
