package entity

import "time"

// MembershipEpisode is a single join/leave interval of a user in a club.
// Rejoining a club opens a new episode instead of rewriting the old one,
// so the full history of a (club, user) pair survives.
//
// An episode with LeftAt == nil is the current one; the partial unique
// index guarantees at most one open episode per (club, user) pair.
type MembershipEpisode struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	ClubID    string `gorm:"not null;type:uuid;uniqueIndex:idx_open_membership,where:left_at IS NULL"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_open_membership,where:left_at IS NULL"`
	JoinedAt  time.Time
	LeftAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Club Club `gorm:"foreignKey:ClubID"`
	User User `gorm:"foreignKey:UserID"`
}

func (m *MembershipEpisode) IsActive() bool {
	return m.LeftAt == nil
}
