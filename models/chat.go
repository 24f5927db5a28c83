// File: /models/chat.go
package models

import (
	"time"
)

const (
	ChatRoleAdmin  = "admin"
	ChatRoleMember = "member"
)

// ChatGroup is a message room. Event-linked groups carry a back-reference to
// their originating event and mirror its roster; EventID is nil for
// general-purpose groups.
type ChatGroup struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"size:500"`
	EventID     *string   `json:"event_id" gorm:"size:191;uniqueIndex"`
	CreatedBy   string    `json:"created_by" gorm:"not null;size:191"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Creator  User              `json:"creator" gorm:"foreignKey:CreatedBy"`
	Members  []ChatGroupMember `json:"members" gorm:"foreignKey:GroupID"`
	Messages []ChatMessage     `json:"messages" gorm:"foreignKey:GroupID"`
}

type ChatGroupMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	GroupID  string    `json:"group_id" gorm:"not null;size:191;uniqueIndex:uk_chat_group_members_group_user"`
	UserID   string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_chat_group_members_group_user"`
	Role     string    `json:"role" gorm:"not null;default:'member';size:20"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`

	Group ChatGroup `json:"group" gorm:"foreignKey:GroupID"`
	User  User      `json:"user" gorm:"foreignKey:UserID"`
}

type ChatMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	GroupID   string    `json:"group_id" gorm:"not null;size:191;index"`
	SenderID  string    `json:"sender_id" gorm:"not null;size:191"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at"`

	Group  ChatGroup `json:"group" gorm:"foreignKey:GroupID"`
	Sender User      `json:"sender" gorm:"foreignKey:SenderID"`
}

// MessageView enriches a message with the sender's current profile. The name
// and avatar are resolved at read time, so a profile rename shows up on past
// messages too.
type MessageView struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	SenderName   string    `json:"sender_name"`
	SenderAvatar *string   `json:"sender_avatar"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

type MemberView struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Avatar   *string   `json:"avatar"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
