// File: /models/user.go
package models

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleCoach  = "coach"
	RoleMember = "member"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password     string    `json:"-" gorm:"not null;size:255"`
	Role         string    `json:"role" gorm:"not null;default:'member';size:20"`
	Avatar       *string   `json:"avatar" gorm:"size:500"`
	Bio          string    `json:"bio" gorm:"size:500"`
	JoinedEvents int       `json:"joined_events" gorm:"default:0"`
	PostsCount   int       `json:"posts_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Posts         []Post  `json:"posts" gorm:"foreignKey:UserID"`
	CreatedEvents []Event `json:"created_events" gorm:"foreignKey:CreatedBy"`
}

// CanManageEvents reports whether the user may create or administer events.
func (u *User) CanManageEvents() bool {
	return u.Role == RoleAdmin || u.Role == RoleCoach
}

// UserSummary is the minimal projection embedded in rosters and chat views.
type UserSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}
