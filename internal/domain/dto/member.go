package dto

import (
	"time"

	"github.com/campuslink/club-governance/internal/domain/entity"
)

// ClubMember is the joined projection of a membership episode and the
// user it belongs to.
type ClubMember struct {
	ClubID   string
	UserID   int64
	FIO      string
	Username string
	Email    string
	Role     entity.Role
	IsBanned bool
	JoinedAt time.Time
	LeftAt   *time.Time
}

func (m ClubMember) IsActive() bool {
	return m.LeftAt == nil
}
