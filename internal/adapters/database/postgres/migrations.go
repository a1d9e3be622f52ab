package postgres

import "github.com/campuslink/club-governance/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Club{},
	&entity.MembershipEpisode{},
	&entity.ExecutiveTenure{},
	&entity.MembershipRequest{},
}
