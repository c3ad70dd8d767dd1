package models

import "time"

// Member is the aggregate root for a roster member.
//
// Invariants:
//   - Name and NameKana are non-blank, at most 100 characters each
//   - NameKana contains only hiragana (U+3041 through U+3093)
//   - Email is non-blank, at most 255 characters, syntactically valid, and
//     unique among active members
//   - CreatedAt is immutable after the first save; UpdatedAt is refreshed on
//     every save
//
// The store assigns ID and timestamps on first save; an unpersisted member
// has ID zero. Field rules are enforced by the validation engine before any
// save, so the store never accepts a record violating them.
//
// # Logical deletion
//
// Deleted members stay in storage. They are excluded from every active read
// path and from the email uniqueness check, but remain retrievable by ID and
// remain counted in aggregate totals. A deleted member's email may be reused.
type Member struct {
	ID               int64
	Name             string
	NameKana         string
	Email            string
	Position         *string
	Location         *string
	ProfileImageURL  *string
	SelfIntroduction *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	IsDeleted        bool
}

// NewMember builds an unpersisted candidate. Optional fields stay nil until
// set by the caller; ID and timestamps are assigned by the store.
func NewMember(name, nameKana, email string) *Member {
	return &Member{
		Name:     name,
		NameKana: nameKana,
		Email:    email,
	}
}

// IsPersisted reports whether the member has been saved.
func (m *Member) IsPersisted() bool {
	return m.ID != 0
}

// IsActive reports whether the member is visible on active read paths.
func (m *Member) IsActive() bool {
	return !m.IsDeleted
}

// Delete marks the member as logically deleted. The caller persists the
// change via the store's MarkDeleted.
func (m *Member) Delete() {
	m.IsDeleted = true
}
