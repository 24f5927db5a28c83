// File: /controllers/strava_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/services"
	"rct-connect-api/utils"
)

type StravaController struct {
	db            *gorm.DB
	stravaService *services.StravaService
}

func NewStravaController(db *gorm.DB, stravaService *services.StravaService) *StravaController {
	return &StravaController{
		db:            db,
		stravaService: stravaService,
	}
}

type StravaConnectRequest struct {
	Code string `json:"code" binding:"required"`
}

// Connect exchanges the OAuth authorization code and stores the tokens.
func (sc *StravaController) Connect(c *gin.Context) {
	userID := c.GetString("user_id")

	var req StravaConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	tokenResp, err := sc.stravaService.ExchangeCode(req.Code)
	if err != nil {
		fmt.Printf("Strava code exchange failed: %v\n", err)
		utils.SendError(c, http.StatusBadGateway, "Could not connect to Strava")
		return
	}

	connection := models.StravaConnection{
		UserID:       userID,
		AthleteID:    tokenResp.Athlete.ID,
		AthleteName:  tokenResp.AthleteName(),
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresAt:    time.Unix(tokenResp.ExpiresAt, 0),
	}

	// Reconnecting replaces the stored tokens
	var existing models.StravaConnection
	err = sc.db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		connection.ID = existing.ID
		err = sc.db.Model(&existing).Updates(map[string]interface{}{
			"athlete_id":    connection.AthleteID,
			"athlete_name":  connection.AthleteName,
			"access_token":  connection.AccessToken,
			"refresh_token": connection.RefreshToken,
			"expires_at":    connection.ExpiresAt,
			"updated_at":    time.Now(),
		}).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		connection.ID = uuid.New().String()
		err = sc.db.Create(&connection).Error
	}
	if err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, gin.H{
		"connected":    true,
		"athlete_id":   connection.AthleteID,
		"athlete_name": connection.AthleteName,
	})
}

func (sc *StravaController) Status(c *gin.Context) {
	userID := c.GetString("user_id")

	var connection models.StravaConnection
	if err := sc.db.Where("user_id = ?", userID).First(&connection).Error; err != nil {
		utils.SendSuccess(c, gin.H{"connected": false})
		return
	}

	utils.SendSuccess(c, gin.H{
		"connected":    true,
		"athlete_id":   connection.AthleteID,
		"athlete_name": connection.AthleteName,
		"expires_at":   connection.ExpiresAt,
	})
}

func (sc *StravaController) Disconnect(c *gin.Context) {
	userID := c.GetString("user_id")

	result := sc.db.Where("user_id = ?", userID).Delete(&models.StravaConnection{})
	if result.Error != nil {
		utils.SendServerError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.SendError(c, http.StatusNotFound, "No Strava connection found")
		return
	}

	utils.SendMessage(c, "Strava disconnected")
}

// GetActivities lists the athlete's recent activities, refreshing the access
// token first when it has expired.
func (sc *StravaController) GetActivities(c *gin.Context) {
	userID := c.GetString("user_id")

	var connection models.StravaConnection
	if err := sc.db.Where("user_id = ?", userID).First(&connection).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "No Strava connection found")
		return
	}

	if connection.Expired() {
		tokenResp, err := sc.stravaService.RefreshToken(connection.RefreshToken)
		if err != nil {
			fmt.Printf("Strava token refresh failed for user %s: %v\n", userID, err)
			utils.SendError(c, http.StatusBadGateway, "Could not refresh Strava connection")
			return
		}

		connection.AccessToken = tokenResp.AccessToken
		connection.RefreshToken = tokenResp.RefreshToken
		connection.ExpiresAt = time.Unix(tokenResp.ExpiresAt, 0)
		if err := sc.db.Model(&connection).Updates(map[string]interface{}{
			"access_token":  connection.AccessToken,
			"refresh_token": connection.RefreshToken,
			"expires_at":    connection.ExpiresAt,
			"updated_at":    time.Now(),
		}).Error; err != nil {
			utils.SendServerError(c, err)
			return
		}
	}

	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "30"))
	activities, err := sc.stravaService.GetActivities(connection.AccessToken, perPage)
	if err != nil {
		fmt.Printf("Strava activities fetch failed for user %s: %v\n", userID, err)
		utils.SendError(c, http.StatusBadGateway, "Could not fetch Strava activities")
		return
	}

	utils.SendSuccess(c, activities)
}
