package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coopmed/coopmed/internal/database/types"
	"github.com/coopmed/coopmed/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// passthroughTx runs the transaction body directly; the stubs below never
// touch the bun.Tx handle.
func passthroughTx(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	return fn(ctx, bun.Tx{})
}

type memberStoreStub struct {
	getByID    func(id string) (*types.Member, error)
	getByEmail func(email string) (*types.Member, error)
	existsByID func(id string) (bool, error)
	lockByID   func(id string) (*types.Member, error)
	insert     func(member *types.Member) error
	delete     func(id string) (int64, error)
}

func (s *memberStoreStub) GetByID(_ context.Context, id string) (*types.Member, error) {
	return s.getByID(id)
}

func (s *memberStoreStub) GetByEmail(_ context.Context, email string) (*types.Member, error) {
	return s.getByEmail(email)
}

func (s *memberStoreStub) ExistsByID(_ context.Context, id string) (bool, error) {
	return s.existsByID(id)
}

func (s *memberStoreStub) LockByID(_ context.Context, _ bun.IDB, id string) (*types.Member, error) {
	return s.lockByID(id)
}

func (s *memberStoreStub) Insert(_ context.Context, _ bun.IDB, member *types.Member) error {
	return s.insert(member)
}

func (s *memberStoreStub) Delete(_ context.Context, _ bun.IDB, id string) (int64, error) {
	return s.delete(id)
}

type compensationStoreStub struct {
	create         func(record *types.CompensationRecord) error
	getForUpdate   func(id uuid.UUID) (*types.CompensationRecord, error)
	update         func(record *types.CompensationRecord) error
	deleteRecord   func(id uuid.UUID) error
	attachSnapshot func(id uuid.UUID, snapshot *types.MemberSnapshot) error
	getRawSnapshot func(id uuid.UUID) (any, error)
	probeSnapshot  func(id uuid.UUID) (bool, error)
	listPending    func() ([]*types.CompensationRecord, error)
}

func (s *compensationStoreStub) Create(_ context.Context, _ bun.IDB, record *types.CompensationRecord) error {
	return s.create(record)
}

func (s *compensationStoreStub) GetForUpdate(_ context.Context, _ bun.IDB, id uuid.UUID) (*types.CompensationRecord, error) {
	return s.getForUpdate(id)
}

func (s *compensationStoreStub) Update(_ context.Context, _ bun.IDB, record *types.CompensationRecord) error {
	return s.update(record)
}

func (s *compensationStoreStub) Delete(_ context.Context, _ bun.IDB, id uuid.UUID) error {
	return s.deleteRecord(id)
}

func (s *compensationStoreStub) AttachSnapshot(_ context.Context, id uuid.UUID, snapshot *types.MemberSnapshot) error {
	return s.attachSnapshot(id, snapshot)
}

func (s *compensationStoreStub) GetRawSnapshot(_ context.Context, _ bun.IDB, id uuid.UUID) (any, error) {
	return s.getRawSnapshot(id)
}

func (s *compensationStoreStub) ProbeSnapshot(_ context.Context, id uuid.UUID) (bool, error) {
	return s.probeSnapshot(id)
}

func (s *compensationStoreStub) ListPending(_ context.Context) ([]*types.CompensationRecord, error) {
	return s.listPending()
}

// cascadeStoreStub succeeds every cascade step without touching storage.
type cascadeStoreStub struct{}

func (s *cascadeStoreStub) GetSupplierIDs(_ context.Context, _ bun.IDB, _ string) ([]int64, error) {
	return []int64{7}, nil
}

func (s *cascadeStoreStub) DeleteSupplierScoped(_ context.Context, _ bun.IDB, _ []int64) (int64, error) {
	return 2, nil
}

func (s *cascadeStoreStub) DeleteDirectlyOwned(_ context.Context, _ bun.IDB, _ string) (int64, error) {
	return 5, nil
}

func (s *cascadeStoreStub) DetachTransparencyNews(_ context.Context, _ bun.IDB, _ string) (int64, error) {
	return 1, nil
}

func testMember(id string) *types.Member {
	return &types.Member{
		ID:           id,
		Email:        id + "@coop.example",
		Name:         "Member " + id,
		Role:         enum.MemberRoleMember,
		CurrentValue: 1500,
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// newRemovalFixture wires a MemberService against stubs where member u1
// exists. The lockByID read can be overridden by tests that need the
// committed row to differ from the resolve read.
func newRemovalFixture(cascade cascadeStore) (*MemberService, *memberStoreStub, *compensationStoreStub) {
	members := &memberStoreStub{
		getByID: func(id string) (*types.Member, error) {
			if id != "u1" {
				return nil, types.ErrMemberNotFound
			}
			return testMember("u1"), nil
		},
		getByEmail: func(email string) (*types.Member, error) {
			if email != "u1@coop.example" {
				return nil, types.ErrMemberNotFound
			}
			return testMember("u1"), nil
		},
		existsByID: func(string) (bool, error) { return false, nil },
		lockByID: func(id string) (*types.Member, error) {
			return testMember(id), nil
		},
		delete: func(string) (int64, error) { return 1, nil },
	}

	compensations := &compensationStoreStub{
		create:         func(*types.CompensationRecord) error { return nil },
		attachSnapshot: func(uuid.UUID, *types.MemberSnapshot) error { return nil },
	}

	svc := &MemberService{
		members:       members,
		compensations: compensations,
		cascade:       cascade,
		runTx:         passthroughTx,
		logger:        zap.NewNop(),
	}

	return svc, members, compensations
}

func TestRemoveByIDSelfRemoval(t *testing.T) {
	t.Parallel()

	svc, _, _ := newRemovalFixture(&cascadeStoreStub{})
	svc.runTx = func(context.Context, func(context.Context, bun.Tx) error) error {
		t.Fatal("self-removal must be rejected before any transaction starts")
		return nil
	}

	result, err := svc.RemoveByID(context.Background(), "u1", "u1")
	require.ErrorIs(t, err, types.ErrSelfRemoval)
	assert.Nil(t, result)
}

func TestRemoveByIDUsesLockedRow(t *testing.T) {
	t.Parallel()

	// The resolve read sees an older committed state than the locked read,
	// as happens when an update commits between the two. The snapshot and
	// the compensation amount must reflect the locked row, which is the
	// row the deletion acts on.
	svc, members, compensations := newRemovalFixture(&cascadeStoreStub{})

	members.lockByID = func(id string) (*types.Member, error) {
		updated := testMember(id)
		updated.Name = "Member u1 (renamed)"
		updated.CurrentValue = 2000
		return updated, nil
	}

	var (
		created  *types.CompensationRecord
		attached *types.MemberSnapshot
	)

	compensations.create = func(record *types.CompensationRecord) error {
		created = record
		return nil
	}
	compensations.attachSnapshot = func(_ uuid.UUID, snapshot *types.MemberSnapshot) error {
		attached = snapshot
		return nil
	}

	result, err := svc.RemoveByID(context.Background(), "admin", "u1")
	require.NoError(t, err)

	assert.InDelta(t, 2000, result.Amount, 0.001)
	assert.True(t, result.SnapshotCaptured)

	require.NotNil(t, created)
	assert.InDelta(t, 2000, created.Amount, 0.001)
	assert.Equal(t, "Member u1 (renamed)", created.MemberName)

	require.NotNil(t, attached)
	assert.InDelta(t, 2000, attached.CurrentValue, 0.001)
	assert.Equal(t, "Member u1 (renamed)", attached.Name)
}

func TestRemoveByIDCascadeOrder(t *testing.T) {
	t.Parallel()

	var order []string

	svc, members, compensations := newRemovalFixture(&orderedCascade{order: &order})

	members.lockByID = func(id string) (*types.Member, error) {
		order = append(order, "lockMember")
		return testMember(id), nil
	}
	members.delete = func(string) (int64, error) {
		order = append(order, "deleteMember")
		return 1, nil
	}
	compensations.create = func(*types.CompensationRecord) error {
		order = append(order, "createCompensation")
		return nil
	}

	_, err := svc.RemoveByID(context.Background(), "admin", "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"lockMember",
		"getSupplierIDs",
		"deleteSupplierScoped",
		"deleteDirectlyOwned",
		"detachTransparencyNews",
		"createCompensation",
		"deleteMember",
	}, order)
}

// orderedCascade appends into a slice shared with the member and
// compensation stubs so one list captures the full cascade sequence.
type orderedCascade struct {
	order *[]string
}

func (s *orderedCascade) GetSupplierIDs(_ context.Context, _ bun.IDB, _ string) ([]int64, error) {
	*s.order = append(*s.order, "getSupplierIDs")
	return nil, nil
}

func (s *orderedCascade) DeleteSupplierScoped(_ context.Context, _ bun.IDB, _ []int64) (int64, error) {
	*s.order = append(*s.order, "deleteSupplierScoped")
	return 0, nil
}

func (s *orderedCascade) DeleteDirectlyOwned(_ context.Context, _ bun.IDB, _ string) (int64, error) {
	*s.order = append(*s.order, "deleteDirectlyOwned")
	return 0, nil
}

func (s *orderedCascade) DetachTransparencyNews(_ context.Context, _ bun.IDB, _ string) (int64, error) {
	*s.order = append(*s.order, "detachTransparencyNews")
	return 0, nil
}

func TestRemoveByIDSnapshotAttachFailure(t *testing.T) {
	t.Parallel()

	svc, _, compensations := newRemovalFixture(&cascadeStoreStub{})
	compensations.attachSnapshot = func(uuid.UUID, *types.MemberSnapshot) error {
		return errors.New("connection reset by peer")
	}

	result, err := svc.RemoveByID(context.Background(), "admin", "u1")
	require.NoError(t, err)
	assert.False(t, result.SnapshotCaptured)
}

func TestRemoveByIDIncomplete(t *testing.T) {
	t.Parallel()

	svc, members, _ := newRemovalFixture(&cascadeStoreStub{})
	members.existsByID = func(string) (bool, error) { return true, nil }

	_, err := svc.RemoveByID(context.Background(), "admin", "u1")
	require.ErrorIs(t, err, types.ErrRemovalIncomplete)
}

// ledgerStub backs the compensation stubs with an in-memory map so whole
// lifecycles (undo consuming the record, settle then revert) can run.
type ledgerStub struct {
	records map[uuid.UUID]*types.CompensationRecord
}

func (l *ledgerStub) store() *compensationStoreStub {
	return &compensationStoreStub{
		getForUpdate: func(id uuid.UUID) (*types.CompensationRecord, error) {
			record, ok := l.records[id]
			if !ok {
				return nil, types.ErrCompensationNotFound
			}
			return record, nil
		},
		update: func(*types.CompensationRecord) error { return nil },
		deleteRecord: func(id uuid.UUID) error {
			delete(l.records, id)
			return nil
		},
		getRawSnapshot: func(id uuid.UUID) (any, error) {
			return l.records[id].Snapshot, nil
		},
		probeSnapshot: func(uuid.UUID) (bool, error) { return false, nil },
	}
}

func newCompensationFixture(ledger *ledgerStub, members memberStore) *CompensationService {
	return &CompensationService{
		compensations: ledger.store(),
		members:       members,
		runTx:         passthroughTx,
		logger:        zap.NewNop(),
	}
}

func removalRecord(id uuid.UUID) *types.CompensationRecord {
	return &types.CompensationRecord{
		ID:         id,
		MemberID:   "u1",
		MemberName: "Member u1",
		Amount:     1500,
		Reason:     enum.CompensationReasonRemoved,
		Status:     enum.CompensationStatusPending,
		Snapshot:   types.CaptureSnapshot(testMember("u1")),
		CreatedAt:  time.Now().UTC(),
	}
}

func TestUndoConsumesRecord(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ledger := &ledgerStub{records: map[uuid.UUID]*types.CompensationRecord{
		id: removalRecord(id),
	}}

	var inserted *types.Member

	members := &memberStoreStub{
		insert: func(member *types.Member) error {
			inserted = member
			return nil
		},
	}

	svc := newCompensationFixture(ledger, members)

	restored, err := svc.Undo(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, "u1", restored.ID)
	assert.Equal(t, "u1@coop.example", restored.Email)

	// The record is consumed; a second undo finds nothing to restore.
	_, err = svc.Undo(context.Background(), id)
	require.ErrorIs(t, err, types.ErrCompensationNotFound)
}

func TestUndoRejectsNonRemovalRecord(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	record := removalRecord(id)
	record.Reason = enum.CompensationReasonRefund

	ledger := &ledgerStub{records: map[uuid.UUID]*types.CompensationRecord{id: record}}
	svc := newCompensationFixture(ledger, &memberStoreStub{})

	_, err := svc.Undo(context.Background(), id)
	require.ErrorIs(t, err, types.ErrNotRemovalCompensation)
	assert.Contains(t, ledger.records, id)
}

func TestSettleThenRevert(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ledger := &ledgerStub{records: map[uuid.UUID]*types.CompensationRecord{
		id: removalRecord(id),
	}}
	svc := newCompensationFixture(ledger, &memberStoreStub{})

	settled, err := svc.Settle(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, enum.CompensationStatusPaid, settled.Status)
	require.NotNil(t, settled.PaidAt)

	// Settling twice is rejected.
	_, err = svc.Settle(context.Background(), id)
	require.ErrorIs(t, err, types.ErrCompensationSettled)

	reverted, err := svc.RevertSettlement(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, enum.CompensationStatusPending, reverted.Status)
	assert.Nil(t, reverted.PaidAt)

	// Reverting an unsettled record is rejected.
	_, err = svc.RevertSettlement(context.Background(), id)
	require.ErrorIs(t, err, types.ErrCompensationNotSettled)
}
