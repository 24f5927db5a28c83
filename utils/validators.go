// File: /utils/validators.go
package utils

import (
	"regexp"
	"strings"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidEventTitle(title string) bool {
	return len(strings.TrimSpace(title)) >= 3
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

func IsValidCalorieInput(age int, weightKg, heightCm float64) bool {
	return age > 0 && age <= 120 &&
		weightKg > 0 && weightKg <= 400 &&
		heightCm > 0 && heightCm <= 260
}
