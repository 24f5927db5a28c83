// File: /models/calculator.go
package models

import (
	"time"
)

type CalorieCalculation struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	UserID        string    `json:"user_id" gorm:"not null;size:191"`
	Gender        string    `json:"gender" gorm:"not null;size:10"`
	Age           int       `json:"age" gorm:"not null"`
	WeightKg      float64   `json:"weight_kg" gorm:"not null"`
	HeightCm      float64   `json:"height_cm" gorm:"not null"`
	ActivityLevel string    `json:"activity_level" gorm:"not null;size:30"`
	Goal          string    `json:"goal" gorm:"not null;size:20"`
	BMR           float64   `json:"bmr" gorm:"not null"`
	TDEE          float64   `json:"tdee" gorm:"not null"`
	TargetKcal    float64   `json:"target_kcal" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
