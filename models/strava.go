// File: /models/strava.go
package models

import (
	"time"
)

// StravaConnection holds the OAuth tokens linking a user to their Strava
// athlete. One row per user; refreshed in place when the access token expires.
type StravaConnection struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex;not null;size:191"`
	AthleteID    int64     `json:"athlete_id" gorm:"not null"`
	AthleteName  string    `json:"athlete_name" gorm:"size:255"`
	AccessToken  string    `json:"-" gorm:"not null;size:500"`
	RefreshToken string    `json:"-" gorm:"not null;size:500"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

// Expired reports whether the access token needs a refresh before use.
func (sc *StravaConnection) Expired() bool {
	return time.Now().After(sc.ExpiresAt.Add(-1 * time.Minute))
}

// StravaActivity is the subset of Strava's activity payload surfaced to
// clients. Not persisted; fetched on demand.
type StravaActivity struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Distance       float64   `json:"distance"`
	MovingTime     int       `json:"moving_time"`
	ElapsedTime    int       `json:"elapsed_time"`
	TotalElevation float64   `json:"total_elevation_gain"`
	StartDate      time.Time `json:"start_date"`
}
