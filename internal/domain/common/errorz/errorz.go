package errorz

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrClubNameTaken     = errors.New("club name already taken")
	ErrAlreadyMember     = errors.New("already an active member")
	ErrNotAMember        = errors.New("not an active member")
	ErrAlreadyExecutive  = errors.New("already an active executive")
	ErrNotAnExecutive    = errors.New("not an active executive")
	ErrDuplicateRequest  = errors.New("pending request already exists")
	ErrInvalidTransition = errors.New("request is not pending")
	ErrForbidden         = errors.New("forbidden")
)
