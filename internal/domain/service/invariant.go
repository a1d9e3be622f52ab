package service

import (
	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/entity"
)

// Cross-entity invariants. Neither ledger checks these on its own; the
// governance service runs them over a snapshot of the membership ledger
// before any executive or head mutation.

// executiveRequiresMembership holds that an executive tenure may only be
// opened for a user with an open membership episode in the same club.
func executiveRequiresMembership(current *entity.MembershipEpisode) error {
	if current == nil || !current.IsActive() {
		return errorz.ErrNotAMember
	}
	return nil
}

// headRequiresMembership holds that the designated head of a club must be
// an active member of it.
func headRequiresMembership(current *entity.MembershipEpisode) error {
	if current == nil || !current.IsActive() {
		return errorz.ErrNotAMember
	}
	return nil
}
