package convert

import (
	"github.com/coopmed/coopmed/internal/database/types"
	restTypes "github.com/coopmed/coopmed/internal/rest/types"
)

// Member converts a database member to a REST API member.
func Member(member *types.Member) *restTypes.Member {
	if member == nil {
		return nil
	}

	return &restTypes.Member{
		ID:               member.ID,
		Email:            member.Email,
		Name:             member.Name,
		Role:             string(member.Role),
		Company:          member.Company,
		TaxID:            member.TaxID,
		Phone:            member.Phone,
		Contribution:     member.Contribution,
		CurrentValue:     member.CurrentValue,
		Proceeds:         member.Proceeds,
		BalanceToReceive: member.BalanceToReceive,
		CreatedAt:        member.CreatedAt,
		BannedAt:         member.BannedAt,
	}
}
