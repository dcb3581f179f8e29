package service

import (
	"context"
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

// MemberService handles member removal. Removal detaches or deletes every
// record owned by the member across all dependent tables, converts the
// member's outstanding balance into a pending compensation record, and
// captures a snapshot so the member can be restored later.
type MemberService struct {
	members       memberStore
	compensations compensationStore
	cascade       cascadeStore
	runTx         txFunc
	logger        *zap.Logger
}

// NewMember creates a new member service.
func NewMember(
	db *bun.DB,
	members *models.MemberModel,
	compensations *models.CompensationModel,
	cascade *models.CascadeModel,
	logger *zap.Logger,
) *MemberService {
	return &MemberService{
		members:       members,
		compensations: compensations,
		cascade:       cascade,
		runTx: func(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
			return dbretry.Transaction(ctx, db, fn)
		},
		logger: logger.Named("member_service"),
	}
}

// RemovalResult reports the outcome of a member removal. SnapshotCaptured
// is false when the best-effort snapshot write failed: the member is gone
// either way, but restoration will not be possible.
type RemovalResult struct {
	CompensationID   uuid.UUID
	Amount           float64
	SnapshotCaptured bool
}

// RemoveByID removes the member with the given id.
func (s *MemberService) RemoveByID(ctx context.Context, actorID, targetID string) (*RemovalResult, error) {
	return s.remove(ctx, actorID, func(ctx context.Context) (*types.Member, error) {
		return s.members.GetByID(ctx, targetID)
	})
}

// RemoveByEmail removes the member with the given email.
func (s *MemberService) RemoveByEmail(ctx context.Context, actorID, email string) (*RemovalResult, error) {
	return s.remove(ctx, actorID, func(ctx context.Context) (*types.Member, error) {
		return s.members.GetByEmail(ctx, email)
	})
}

// remove is the single removal path; the resolver decides how the target
// identity is looked up. Steps:
//
//  1. resolve the target and reject self-removal before any transaction
//  2. in one transaction: lock the member row, capture the snapshot and
//     build the compensation record from the locked row, delete
//     supplier-scoped records, delete directly-owned records, detach
//     approval history, create the compensation record, delete the member
//     row last
//  3. after commit: best-effort snapshot attach, then verify the member
//     row is truly gone
func (s *MemberService) remove(
	ctx context.Context, actorID string, resolve func(context.Context) (*types.Member, error),
) (*RemovalResult, error) {
	member, err := resolve(ctx)
	if err != nil {
		return nil, err
	}

	if member.ID == actorID {
		return nil, types.ErrSelfRemoval
	}

	var (
		snapshot *types.MemberSnapshot
		record   *types.CompensationRecord
	)

	err = s.runTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		// Re-read under a row lock so two concurrent removals of the same
		// member serialize; the loser sees the row gone and fails NotFound.
		// The snapshot and compensation amount come from this locked read,
		// not the resolve read: an update committed between the two must be
		// reflected in what gets preserved and paid out.
		locked, err := s.members.LockByID(ctx, tx, member.ID)
		if err != nil {
			return err
		}

		snapshot = types.CaptureSnapshot(locked)

		record = &types.CompensationRecord{
			ID:         uuid.New(),
			MemberID:   locked.ID,
			MemberName: locked.Name,
			Company:    locked.Company,
			TaxID:      locked.TaxID,
			Amount:     locked.PayableValue(),
			Reason:     enum.CompensationReasonRemoved,
			Status:     enum.CompensationStatusPending,
			CreatedAt:  time.Now().UTC(),
		}

		supplierIDs, err := s.cascade.GetSupplierIDs(ctx, tx, locked.ID)
		if err != nil {
			return err
		}

		scoped, err := s.cascade.DeleteSupplierScoped(ctx, tx, supplierIDs)
		if err != nil {
			return err
		}

		owned, err := s.cascade.DeleteDirectlyOwned(ctx, tx, locked.ID)
		if err != nil {
			return err
		}

		detached, err := s.cascade.DetachTransparencyNews(ctx, tx, locked.ID)
		if err != nil {
			return err
		}

		if err := s.compensations.Create(ctx, tx, record); err != nil {
			return err
		}

		if _, err := s.members.Delete(ctx, tx, locked.ID); err != nil {
			return err
		}

		s.logger.Debug("Cascade complete",
			zap.String("memberId", locked.ID),
			zap.Int("suppliers", len(supplierIDs)),
			zap.Int64("supplierScoped", scoped),
			zap.Int64("directlyOwned", owned),
			zap.Int64("detached", detached))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	// Best-effort secondary write. Removal has already committed; a failure
	// here only costs restorability, so it is logged and reported in the
	// result instead of propagated.
	captured := true
	if err := s.compensations.AttachSnapshot(ctx, record.ID, snapshot); err != nil {
		captured = false

		s.logger.Error("Failed to attach member snapshot; removal is not undoable",
			zap.String("memberId", member.ID),
			zap.String("compensationId", record.ID.String()),
			zap.Error(err))
	}

	if err := s.verifyRemoved(ctx, member.ID); err != nil {
		return nil, err
	}

	s.logger.Info("Member removed",
		zap.String("memberId", member.ID),
		zap.String("actorId", actorID),
		zap.Float64("amount", record.Amount),
		zap.Bool("snapshotCaptured", captured))

	return &RemovalResult{
		CompensationID:   record.ID,
		Amount:           record.Amount,
		SnapshotCaptured: captured,
	}, nil
}

// verifyRemoved re-queries the member identity after commit. A surviving
// row means the storage layer misbehaved; this is fatal and non-retryable.
func (s *MemberService) verifyRemoved(ctx context.Context, memberID string) error {
	exists, err := s.members.ExistsByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to verify removal: %w", err)
	}

	if exists {
		s.logger.Error("Member row survived a committed removal",
			zap.String("memberId", memberID))

		return types.ErrRemovalIncomplete
	}

	return nil
}
