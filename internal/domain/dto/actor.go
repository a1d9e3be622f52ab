package dto

import "github.com/campuslink/club-governance/internal/domain/entity"

// Actor is the already-authenticated identity the transport layer passes
// with every governance call.
type Actor struct {
	ID   int64
	Role entity.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.Admin
}
