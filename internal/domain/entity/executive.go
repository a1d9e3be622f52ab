package entity

import "time"

// ExecutiveTenure is a single interval during which a user held a named
// position in a club's leadership. Same episode shape as membership:
// LeftAt == nil marks the open tenure, history is append-only.
type ExecutiveTenure struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	ClubID    string `gorm:"not null;type:uuid;uniqueIndex:idx_open_tenure,where:left_at IS NULL"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_open_tenure,where:left_at IS NULL"`
	Position  string `gorm:"not null"`
	JoinedAt  time.Time
	LeftAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Club Club `gorm:"foreignKey:ClubID"`
	User User `gorm:"foreignKey:UserID"`
}

func (t *ExecutiveTenure) IsActive() bool {
	return t.LeftAt == nil
}
