package entity

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// MembershipRequest is a pending ask to join a club. The status moves
// pending -> approved|rejected exactly once and is terminal after that;
// a pending request can also be cancelled (deleted) by its author.
type MembershipRequest struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	ClubID          string `gorm:"not null;type:uuid;index"`
	UserID          int64  `gorm:"not null;index"`
	Message         string
	Status          RequestStatus `gorm:"not null;default:pending"`
	ResponseMessage string
	ProcessedAt     *time.Time
	ProcessedBy     *int64
	CreatedAt       time.Time

	Club Club `gorm:"foreignKey:ClubID"`
	User User `gorm:"foreignKey:UserID"`
}

func (r *MembershipRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
