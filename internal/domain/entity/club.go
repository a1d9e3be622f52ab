package entity

import (
	"slices"
	"time"

	"github.com/lib/pq"
)

type Club struct {
	ID           string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string `gorm:"not null;uniqueIndex"`
	Description  string
	HeadID       int64          `gorm:"not null"`
	Approved     bool           `gorm:"not null;default:false"`
	Active       bool           `gorm:"not null;default:true"`
	AllowedRoles pq.StringArray `gorm:"type:text[]"`
}

// AllowsRole reports whether users with the given role may request
// membership. An empty list means the club is open to everyone.
func (c *Club) AllowsRole(role Role) bool {
	if len(c.AllowedRoles) == 0 {
		return true
	}
	return slices.Contains(c.AllowedRoles, string(role))
}
