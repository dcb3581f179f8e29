package convert

import (
	"github.com/coopmed/coopmed/internal/database/types"
	restTypes "github.com/coopmed/coopmed/internal/rest/types"
)

// Compensation converts a database compensation record to a REST API record.
func Compensation(record *types.CompensationRecord) *restTypes.Compensation {
	if record == nil {
		return nil
	}

	return &restTypes.Compensation{
		ID:          record.ID.String(),
		MemberID:    record.MemberID,
		MemberName:  record.MemberName,
		Company:     record.Company,
		TaxID:       record.TaxID,
		Amount:      record.Amount,
		Reason:      string(record.Reason),
		Status:      string(record.Status),
		PaidAt:      record.PaidAt,
		HasSnapshot: !record.Snapshot.IsEmpty(),
		Snapshot:    snapshotOrNil(record.Snapshot),
		CreatedAt:   record.CreatedAt,
	}
}

// snapshotOrNil normalizes empty snapshots to an explicit JSON null so
// clients see one shape for "no snapshot attached".
func snapshotOrNil(s *types.MemberSnapshot) *types.MemberSnapshot {
	if s.IsEmpty() {
		return nil
	}

	return s
}

// Compensations converts a list of database compensation records.
func Compensations(records []*types.CompensationRecord) []*restTypes.Compensation {
	converted := make([]*restTypes.Compensation, 0, len(records))
	for _, record := range records {
		converted = append(converted, Compensation(record))
	}

	return converted
}
