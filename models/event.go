// File: /models/event.go
package models

import (
	"time"
)

const (
	DefaultGroupName = "All levels"
	DefaultEventType = "Outing"
)

type Event struct {
	ID                string    `json:"id" gorm:"primaryKey;size:191"`
	Title             string    `json:"title" gorm:"not null;size:255"`
	Description       string    `json:"description" gorm:"type:text"`
	EventDate         string    `json:"date" gorm:"column:event_date;not null;size:20"`
	EventTime         string    `json:"time" gorm:"column:event_time;not null;size:10"`
	Location          string    `json:"location" gorm:"not null;size:255"`
	LocationLatitude  *float64  `json:"location_latitude"`
	LocationLongitude *float64  `json:"location_longitude"`
	Distance          *float64  `json:"distance"`
	GroupName         string    `json:"group_name" gorm:"not null;default:'All levels';size:100"`
	EventType         string    `json:"event_type" gorm:"not null;default:'Outing';size:50"`
	MaxParticipants   *int      `json:"max_participants"`
	CreatedBy         string    `json:"created_by" gorm:"not null;size:191"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Creator      User               `json:"creator" gorm:"foreignKey:CreatedBy"`
	Participants []EventParticipant `json:"participants" gorm:"foreignKey:EventID"`
}

type EventParticipant struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	EventID  string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:uk_event_participants_event_user"`
	UserID   string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_event_participants_event_user"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`

	Event Event `json:"event" gorm:"foreignKey:EventID"`
	User  User  `json:"user" gorm:"foreignKey:UserID"`
}

// ParticipantView is a roster entry joined with the user projection.
type ParticipantView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Avatar   *string   `json:"avatar"`
	JoinedAt time.Time `json:"joined_at"`
}
