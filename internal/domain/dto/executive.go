package dto

import (
	"time"

	"github.com/campuslink/club-governance/internal/domain/entity"
)

// ClubExecutive is the joined projection of an executive tenure and the
// user holding it.
type ClubExecutive struct {
	ClubID   string
	UserID   int64
	FIO      string
	Username string
	Email    string
	Role     entity.Role
	Position string
	JoinedAt time.Time
	LeftAt   *time.Time
}

func (e ClubExecutive) IsActive() bool {
	return e.LeftAt == nil
}
