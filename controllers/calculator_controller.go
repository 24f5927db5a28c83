// File: /controllers/calculator_controller.go
package controllers

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/utils"
)

type CalculatorController struct {
	db *gorm.DB
}

func NewCalculatorController(db *gorm.DB) *CalculatorController {
	return &CalculatorController{db: db}
}

type CalculateCaloriesRequest struct {
	Gender        string  `json:"gender" binding:"required,oneof=male female"`
	Age           int     `json:"age" binding:"required,gt=0"`
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	HeightCm      float64 `json:"height_cm" binding:"required,gt=0"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
	Goal          string  `json:"goal"`
}

type CalorieResult struct {
	BMR        float64 `json:"bmr"`
	TDEE       float64 `json:"tdee"`
	TargetKcal float64 `json:"target_kcal"`
}

// Multipliers for the standard activity levels; anything unknown falls back
// to sedentary.
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Daily kcal adjustment per goal.
var goalAdjustments = map[string]float64{
	"lose_weight": -500,
	"maintain":    0,
	"gain_weight": 300,
}

func (cc *CalculatorController) CalculateCalories(c *gin.Context) {
	var req CalculateCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidCalorieInput(req.Age, req.WeightKg, req.HeightCm) {
		utils.SendValidationError(c, "Age, weight or height out of range")
		return
	}

	result := calculateCalories(req)
	utils.SendSuccess(c, result)
}

func (cc *CalculatorController) SaveCalculation(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CalculateCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidCalorieInput(req.Age, req.WeightKg, req.HeightCm) {
		utils.SendValidationError(c, "Age, weight or height out of range")
		return
	}

	result := calculateCalories(req)

	goal := req.Goal
	if goal == "" {
		goal = "maintain"
	}

	calculation := models.CalorieCalculation{
		ID:            uuid.New().String(),
		UserID:        userID,
		Gender:        req.Gender,
		Age:           req.Age,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		ActivityLevel: req.ActivityLevel,
		Goal:          goal,
		BMR:           result.BMR,
		TDEE:          result.TDEE,
		TargetKcal:    result.TargetKcal,
	}

	if err := cc.db.Create(&calculation).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendCreated(c, calculation)
}

func (cc *CalculatorController) GetHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	var calculations []models.CalorieCalculation
	if err := cc.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&calculations).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, calculations)
}

func (cc *CalculatorController) ClearHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := cc.db.Where("user_id = ?", userID).Delete(&models.CalorieCalculation{}).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendMessage(c, "Calculation history cleared")
}

// calculateCalories applies the Mifflin-St Jeor equation:
// BMR = 10*weight + 6.25*height - 5*age + 5 (male) / -161 (female).
func calculateCalories(req CalculateCaloriesRequest) CalorieResult {
	bmr := 10*req.WeightKg + 6.25*req.HeightCm - 5*float64(req.Age)
	if req.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityFactors[req.ActivityLevel]
	if !ok {
		factor = activityFactors["sedentary"]
	}
	tdee := bmr * factor

	adjustment := goalAdjustments["maintain"]
	if adj, ok := goalAdjustments[req.Goal]; ok {
		adjustment = adj
	}
	target := tdee + adjustment

	return CalorieResult{
		BMR:        math.Round(bmr),
		TDEE:       math.Round(tdee),
		TargetKcal: math.Round(target),
	}
}
