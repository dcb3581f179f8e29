package service

import (
	"context"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// The services depend on these narrow store interfaces rather than the
// concrete model types so the business logic can be exercised without a
// database connection.

type memberStore interface {
	GetByID(ctx context.Context, memberID string) (*types.Member, error)
	GetByEmail(ctx context.Context, email string) (*types.Member, error)
	ExistsByID(ctx context.Context, memberID string) (bool, error)
	LockByID(ctx context.Context, tx bun.IDB, memberID string) (*types.Member, error)
	Insert(ctx context.Context, tx bun.IDB, member *types.Member) error
	Delete(ctx context.Context, tx bun.IDB, memberID string) (int64, error)
}

type compensationStore interface {
	Create(ctx context.Context, tx bun.IDB, record *types.CompensationRecord) error
	GetForUpdate(ctx context.Context, tx bun.IDB, id uuid.UUID) (*types.CompensationRecord, error)
	Update(ctx context.Context, tx bun.IDB, record *types.CompensationRecord) error
	Delete(ctx context.Context, tx bun.IDB, id uuid.UUID) error
	AttachSnapshot(ctx context.Context, id uuid.UUID, snapshot *types.MemberSnapshot) error
	GetRawSnapshot(ctx context.Context, tx bun.IDB, id uuid.UUID) (any, error)
	ProbeSnapshot(ctx context.Context, id uuid.UUID) (bool, error)
	ListPending(ctx context.Context) ([]*types.CompensationRecord, error)
}

type cascadeStore interface {
	GetSupplierIDs(ctx context.Context, tx bun.IDB, memberID string) ([]int64, error)
	DeleteSupplierScoped(ctx context.Context, tx bun.IDB, supplierIDs []int64) (int64, error)
	DeleteDirectlyOwned(ctx context.Context, tx bun.IDB, memberID string) (int64, error)
	DetachTransparencyNews(ctx context.Context, tx bun.IDB, memberID string) (int64, error)
}

// txFunc runs fn inside a transaction, retrying transient failures.
type txFunc func(ctx context.Context, fn func(context.Context, bun.Tx) error) error
