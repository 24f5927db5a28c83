// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.SendSuccess(c, user)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		if *req.Name == "" {
			utils.SendValidationError(c, "Name cannot be empty")
			return
		}
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, user)
}

func (uc *UserController) GetStatistics(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var joinedEvents int64
	uc.db.Model(&models.EventParticipant{}).Where("user_id = ?", userID).Count(&joinedEvents)

	var createdEvents int64
	uc.db.Model(&models.Event{}).Where("created_by = ?", userID).Count(&createdEvents)

	var posts int64
	uc.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&posts)

	utils.SendSuccess(c, gin.H{
		"joined_events":  joinedEvents,
		"created_events": createdEvents,
		"posts":          posts,
	})
}
