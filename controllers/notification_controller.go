// File: /controllers/notification_controller.go
package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/utils"
)

type NotificationController struct {
	db *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

// GetNotifications gets paginated notifications for the current user
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	notificationType := c.Query("type") // Optional filter by type

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	offset := (page - 1) * limit

	query := nc.db.Where("target_user_id = ?", userID)
	if notificationType != "" {
		query = query.Where("type = ?", notificationType)
	}

	var total int64
	query.Model(&models.Notification{}).Count(&total)

	var notifications []models.Notification
	if err := query.Preload("ActorUser").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, notification.ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	utils.SendSuccess(c, models.PaginatedNotifications{
		Notifications: responses,
		Page:          page,
		Limit:         limit,
		Total:         total,
		HasMore:       page < totalPages,
		TotalPages:    totalPages,
	})
}

// GetNotificationStats gets notification statistics (unread count, etc.)
func (nc *NotificationController) GetNotificationStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var unreadCount int64
	var totalCount int64

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ?", userID).
		Count(&totalCount).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, models.NotificationStats{
		UnreadCount: int(unreadCount),
		TotalCount:  int(totalCount),
	})
}

// MarkAsRead marks a notification as read
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	var notification models.Notification
	if err := nc.db.Where("id = ? AND target_user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.SendServerError(c, err)
		}
		return
	}

	if err := nc.db.Model(&notification).Update("is_read", true).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendMessage(c, "Notification marked as read")
}

// MarkAllAsRead marks all notifications as read for the current user
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendMessage(c, "All notifications marked as read")
}

// DeleteNotification deletes a notification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	var notification models.Notification
	if err := nc.db.Where("id = ? AND target_user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.SendServerError(c, err)
		}
		return
	}

	if err := nc.db.Delete(&notification).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendMessage(c, "Notification deleted successfully")
}

// CreateNotification creates a new notification (internal use)
func (nc *NotificationController) CreateNotification(params models.CreateNotificationParams) error {
	// Don't create notification if actor and target are the same
	if params.ActorUserID == params.TargetUserID {
		return nil
	}

	// Check for duplicate notifications (within last hour for same action)
	var existingNotification models.Notification
	query := nc.db.Where("type = ? AND actor_user_id = ? AND target_user_id = ? AND created_at > ?",
		params.Type, params.ActorUserID, params.TargetUserID, time.Now().Add(-1*time.Hour))
	if params.PostID != nil {
		query = query.Where("post_id = ?", *params.PostID)
	}
	if params.EventID != nil {
		query = query.Where("event_id = ?", *params.EventID)
	}
	if err := query.First(&existingNotification).Error; err == nil {
		// Duplicate notification exists, don't create another
		return nil
	}

	notification := models.Notification{
		ID:           uuid.New().String(),
		Type:         params.Type,
		ActorUserID:  params.ActorUserID,
		TargetUserID: params.TargetUserID,
		PostID:       params.PostID,
		EventID:      params.EventID,
		IsRead:       false,
	}

	return nc.db.Create(&notification).Error
}

// Helper methods for creating specific notification types

func (nc *NotificationController) CreateLikeNotification(actorUserID, targetUserID, postID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeLike,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		PostID:       &postID,
	})
}

func (nc *NotificationController) CreateCommentNotification(actorUserID, targetUserID, postID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeComment,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		PostID:       &postID,
	})
}

func (nc *NotificationController) CreateEventJoinedNotification(actorUserID, targetUserID, eventID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeEventJoined,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		EventID:      &eventID,
	})
}

func (nc *NotificationController) CreateEventUpdatedNotification(actorUserID, targetUserID, eventID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeEventUpdated,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		EventID:      &eventID,
	})
}
