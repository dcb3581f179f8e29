package types

import (
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coopmed/coopmed/internal/database/types/enum"
)

var ErrSnapshotUnavailable = errors.New("no usable member snapshot available")

// SnapshotSchemaVersion is the version tag written into new snapshots.
// Version 0 snapshots (written before the tag existed) are still accepted
// on decode; absent fields fall back to zero values.
const SnapshotSchemaVersion = 1

// SnapshotTimeLayout is the textual form dates take inside a snapshot.
const SnapshotTimeLayout = "2006-01-02 15:04:05"

// SnapshotSource identifies which decode strategy produced a snapshot.
type SnapshotSource string

const (
	// SnapshotSourceStructured means the store returned the payload as a
	// structured value (map or already-typed snapshot).
	SnapshotSourceStructured SnapshotSource = "structured"
	// SnapshotSourceEncoded means the payload arrived as an encoded JSON
	// string that had to be parsed.
	SnapshotSourceEncoded SnapshotSource = "encoded"
	// SnapshotSourceInMemory means both stored forms were unusable and the
	// snapshot already attached to the in-memory record was used instead.
	SnapshotSourceInMemory SnapshotSource = "in-memory"
)

// Truthy is a bool that tolerates the loose encodings older snapshots used
// for boolean fields: true/false, 0/1, and their string forms.
type Truthy bool

// UnmarshalJSON implements json.Unmarshaler.
func (t *Truthy) UnmarshalJSON(data []byte) error {
	switch s := strings.Trim(string(data), `"`); s {
	case "1", "true":
		*t = true
	default:
		*t = false
	}

	return nil
}

// MemberSnapshot is a point-in-time copy of every member attribute, stored
// in the compensation record's jsonb column so a removed member can be
// recreated later. Values are coerced to portable primitive forms: dates as
// strings, optional fields as nulls.
type MemberSnapshot struct {
	SchemaVersion int `json:"schemaVersion"`

	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash"`

	Company     *string `json:"company"`
	TaxID       *string `json:"taxId"`
	Phone       *string `json:"phone"`
	BankName    *string `json:"bankName"`
	BankBranch  *string `json:"bankBranch"`
	BankAccount *string `json:"bankAccount"`

	NotifyByEmail Truthy `json:"notifyByEmail"`
	NotifyBySMS   Truthy `json:"notifyBySms"`

	Contribution     float64 `json:"contribution"`
	CurrentValue     float64 `json:"currentValue"`
	Proceeds         float64 `json:"proceeds"`
	BalanceToReceive float64 `json:"balanceToReceive"`

	CreatedAt string  `json:"createdAt"`
	BannedAt  *string `json:"bannedAt"`
}

// IsEmpty reports whether the snapshot carries no identity at all.
// Decoding treats empty snapshots as unusable.
func (s *MemberSnapshot) IsEmpty() bool {
	return s == nil || (s.ID == "" && s.Email == "")
}

// CaptureSnapshot builds a snapshot from a fully loaded member record.
// It must run before any deletion so the captured state reflects the
// pre-removal truth. No side effects.
func CaptureSnapshot(m *Member) *MemberSnapshot {
	var bannedAt *string
	if m.BannedAt != nil {
		v := m.BannedAt.UTC().Format(SnapshotTimeLayout)
		bannedAt = &v
	}

	return &MemberSnapshot{
		SchemaVersion:    SnapshotSchemaVersion,
		ID:               m.ID,
		Email:            m.Email,
		Name:             m.Name,
		Role:             string(m.Role),
		PasswordHash:     m.PasswordHash,
		Company:          m.Company,
		TaxID:            m.TaxID,
		Phone:            m.Phone,
		BankName:         m.BankName,
		BankBranch:       m.BankBranch,
		BankAccount:      m.BankAccount,
		NotifyByEmail:    Truthy(m.NotifyByEmail),
		NotifyBySMS:      Truthy(m.NotifyBySMS),
		Contribution:     m.Contribution,
		CurrentValue:     m.CurrentValue,
		Proceeds:         m.Proceeds,
		BalanceToReceive: m.BalanceToReceive,
		CreatedAt:        m.CreatedAt.UTC().Format(SnapshotTimeLayout),
		BannedAt:         bannedAt,
	}
}

// DecodeSnapshot turns whatever shape the store handed back into a typed
// snapshot. The store is inconsistent about jsonb payloads: sometimes a
// structured value, sometimes a raw encoded string. Strategies are tried in
// order and the first one yielding a non-empty snapshot wins:
//
//  1. structured value (typed snapshot or generic map, re-marshalled)
//  2. encoded JSON string or bytes
//  3. the snapshot already attached to the in-memory record
//
// Returns the snapshot, the strategy that produced it, and
// ErrSnapshotUnavailable when every strategy fails.
func DecodeSnapshot(raw any, inMemory *MemberSnapshot) (*MemberSnapshot, SnapshotSource, error) {
	switch v := raw.(type) {
	case nil:
		// Fall through to the in-memory fallback below.
	case *MemberSnapshot:
		if !v.IsEmpty() {
			return v, SnapshotSourceStructured, nil
		}
	case string:
		if s := decodeSnapshotBytes([]byte(v)); !s.IsEmpty() {
			return s, SnapshotSourceEncoded, nil
		}
	case []byte:
		if s := decodeSnapshotBytes(v); !s.IsEmpty() {
			return s, SnapshotSourceEncoded, nil
		}
	default:
		// Generic maps and any other structured form round-trip through
		// the JSON encoder to pick up field coercions.
		if data, err := sonic.Marshal(v); err == nil {
			if s := decodeSnapshotBytes(data); !s.IsEmpty() {
				return s, SnapshotSourceStructured, nil
			}
		}
	}

	if !inMemory.IsEmpty() {
		return inMemory, SnapshotSourceInMemory, nil
	}

	return nil, "", ErrSnapshotUnavailable
}

func decodeSnapshotBytes(data []byte) *MemberSnapshot {
	var s MemberSnapshot
	if err := sonic.Unmarshal(data, &s); err != nil {
		return nil
	}

	return &s
}

// RestoreMember rebuilds a member record from the snapshot, preserving the
// original primary identity. Coercions are explicit: date strings are
// parsed with safe defaults, missing numerics stay zero, and fields absent
// from older snapshot versions fall back to their zero values.
func (s *MemberSnapshot) RestoreMember() *Member {
	role := enum.MemberRole(s.Role)
	if role == "" {
		role = enum.MemberRoleMember
	}

	createdAt, ok := parseSnapshotTime(s.CreatedAt)
	if !ok {
		createdAt = time.Now().UTC()
	}

	var bannedAt *time.Time
	if s.BannedAt != nil {
		if t, ok := parseSnapshotTime(*s.BannedAt); ok {
			bannedAt = &t
		}
	}

	return &Member{
		ID:               s.ID,
		Email:            s.Email,
		Name:             s.Name,
		Role:             role,
		PasswordHash:     s.PasswordHash,
		Company:          s.Company,
		TaxID:            s.TaxID,
		Phone:            s.Phone,
		BankName:         s.BankName,
		BankBranch:       s.BankBranch,
		BankAccount:      s.BankAccount,
		NotifyByEmail:    bool(s.NotifyByEmail),
		NotifyBySMS:      bool(s.NotifyBySMS),
		Contribution:     s.Contribution,
		CurrentValue:     s.CurrentValue,
		Proceeds:         s.Proceeds,
		BalanceToReceive: s.BalanceToReceive,
		CreatedAt:        createdAt,
		BannedAt:         bannedAt,
	}
}

func parseSnapshotTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(SnapshotTimeLayout, value); err == nil {
		return t.UTC(), true
	}

	// Older snapshots stored RFC 3339 timestamps.
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}

	return time.Time{}, false
}
