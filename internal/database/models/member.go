package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coopmed/coopmed/internal/database/dbretry"
	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// MemberModel handles database operations for cooperative members.
type MemberModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMember creates a new MemberModel instance.
func NewMember(db *bun.DB, logger *zap.Logger) *MemberModel {
	return &MemberModel{
		db:     db,
		logger: logger.Named("db_member"),
	}
}

// GetByID retrieves a member by primary id, including fields excluded from
// normal read projections such as the password hash.
func (m *MemberModel) GetByID(ctx context.Context, memberID string) (*types.Member, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Member, error) {
		var member types.Member

		err := m.db.NewSelect().
			Model(&member).
			Where("id = ?", memberID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrMemberNotFound
			}

			return nil, fmt.Errorf("failed to get member: %w", err)
		}

		return &member, nil
	})
}

// GetByEmail retrieves a member by email.
func (m *MemberModel) GetByEmail(ctx context.Context, email string) (*types.Member, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Member, error) {
		var member types.Member

		err := m.db.NewSelect().
			Model(&member).
			Where("email = ?", email).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrMemberNotFound
			}

			return nil, fmt.Errorf("failed to get member by email: %w", err)
		}

		return &member, nil
	})
}

// ExistsByID checks whether a member row is present.
func (m *MemberModel) ExistsByID(ctx context.Context, memberID string) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		exists, err := m.db.NewSelect().
			Model((*types.Member)(nil)).
			Where("id = ?", memberID).
			Exists(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("failed to check member existence: %w", err)
		}

		return exists, nil
	})
}

// LockByID re-reads a member inside the caller's transaction with a row
// lock, so concurrent removal attempts on the same member serialize.
func (m *MemberModel) LockByID(ctx context.Context, tx bun.IDB, memberID string) (*types.Member, error) {
	var member types.Member

	err := tx.NewSelect().
		Model(&member).
		Where("id = ?", memberID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrMemberNotFound
		}

		return nil, fmt.Errorf("failed to lock member: %w", err)
	}

	return &member, nil
}

// Insert writes a member row inside the caller's transaction.
func (m *MemberModel) Insert(ctx context.Context, tx bun.IDB, member *types.Member) error {
	if _, err := tx.NewInsert().Model(member).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// Delete removes the member row inside the caller's transaction.
func (m *MemberModel) Delete(ctx context.Context, tx bun.IDB, memberID string) (int64, error) {
	result, err := tx.NewDelete().
		Model((*types.Member)(nil)).
		Where("id = ?", memberID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return affected, nil
}
