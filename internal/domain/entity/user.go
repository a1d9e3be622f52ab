package entity

import "time"

type Role string

const (
	Student Role = "student"
	Teacher Role = "teacher"
	Staff   Role = "staff"
	Admin   Role = "admin"
)

// User mirrors the identity registry; the engine reads it and never owns
// credentials or sessions.
type User struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	FIO       string
	Username  string
	Email     string
	Role      Role `gorm:"not null;default:student"`
	IsBanned  bool
}
