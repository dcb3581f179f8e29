package enum

// MemberRole represents a member's role within the cooperative.
type MemberRole string

const (
	// MemberRoleAdmin can manage other members, including removal.
	MemberRoleAdmin MemberRole = "admin"
	// MemberRoleStaff handles day-to-day cooperative operations.
	MemberRoleStaff MemberRole = "staff"
	// MemberRoleMember is a regular cooperative participant.
	MemberRoleMember MemberRole = "member"
)
