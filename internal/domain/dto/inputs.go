package dto

// CreateClub is the validated input for registering a new club. Length
// rules for the free-form fields live in domain/utils/validator.
type CreateClub struct {
	Name         string `validate:"required"`
	Description  string
	HeadID       int64 `validate:"required"`
	AllowedRoles []string
}

// UpdateClub carries the mutable club attributes.
type UpdateClub struct {
	Description  *string
	AllowedRoles *[]string
}

// JoinRequest is the validated input for filing a membership request.
type JoinRequest struct {
	ClubID  string `validate:"required,uuid4"`
	Message string
}
