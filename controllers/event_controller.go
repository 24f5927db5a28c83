// File: /controllers/event_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/repositories"
	"rct-connect-api/services"
	"rct-connect-api/utils"
)

type EventController struct {
	db                     *gorm.DB
	chatRepo               *repositories.ChatRepository
	notificationController *NotificationController
	emailService           *services.EmailService
}

func NewEventController(db *gorm.DB, notificationController *NotificationController, emailService *services.EmailService) *EventController {
	return &EventController{
		db:                     db,
		chatRepo:               repositories.NewChatRepository(db),
		notificationController: notificationController,
		emailService:           emailService,
	}
}

type CreateEventRequest struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description"`
	Date              string   `json:"date" binding:"required"`
	Time              string   `json:"time" binding:"required"`
	Location          string   `json:"location" binding:"required"`
	LocationLatitude  *float64 `json:"location_latitude"`
	LocationLongitude *float64 `json:"location_longitude"`
	Distance          *float64 `json:"distance"`
	GroupName         string   `json:"group_name"`
	EventType         string   `json:"event_type"`
	MaxParticipants   *int     `json:"max_participants"`
}

type UpdateEventRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	Date              *string  `json:"date"`
	Time              *string  `json:"time"`
	Location          *string  `json:"location"`
	LocationLatitude  *float64 `json:"location_latitude"`
	LocationLongitude *float64 `json:"location_longitude"`
	Distance          *float64 `json:"distance"`
	GroupName         *string  `json:"group_name"`
	EventType         *string  `json:"event_type"`
	MaxParticipants   *int     `json:"max_participants"`
}

func (ec *EventController) GetEvents(c *gin.Context) {
	var events []models.Event
	query := ec.db.Preload("Creator")

	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if eventType := c.Query("event_type"); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	if err := query.Order("event_date ASC, event_time ASC").Find(&events).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, events)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var actingUser models.User
	if err := ec.db.First(&actingUser, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	if !actingUser.CanManageEvents() {
		utils.SendError(c, http.StatusForbidden, "Only admins and coaches can create events")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if msg := validateEventInput(req.Title, req.Location, req.Distance, req.MaxParticipants, req.LocationLatitude, req.LocationLongitude); msg != "" {
		utils.SendValidationError(c, msg)
		return
	}

	groupName := req.GroupName
	if groupName == "" {
		groupName = models.DefaultGroupName
	}
	eventType := req.EventType
	if eventType == "" {
		eventType = models.DefaultEventType
	}

	event := models.Event{
		ID:                uuid.New().String(),
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		EventDate:         req.Date,
		EventTime:         req.Time,
		Location:          req.Location,
		LocationLatitude:  req.LocationLatitude,
		LocationLongitude: req.LocationLongitude,
		Distance:          req.Distance,
		GroupName:         groupName,
		EventType:         eventType,
		MaxParticipants:   req.MaxParticipants,
		CreatedBy:         userID,
	}

	// The event, its companion chat group and the creator's admin seat are
	// one unit: all three rows or none.
	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		group := models.ChatGroup{
			ID:          uuid.New().String(),
			Name:        "Chat: " + event.Title,
			Description: event.Description,
			EventID:     &event.ID,
			CreatedBy:   userID,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		return ec.chatRepo.WithTx(tx).AddMember(group.ID, userID, models.ChatRoleAdmin)
	})
	if err != nil {
		utils.SendServerError(c, fmt.Errorf("event creation failed: %w", err))
		return
	}

	utils.SendCreated(c, event)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.Preload("Creator").Preload("Participants").
		First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	utils.SendSuccess(c, event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	if event.CreatedBy != userID && c.GetString("role") != models.RoleAdmin {
		utils.SendError(c, http.StatusForbidden, "Only the event creator or an admin can update this event")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != nil {
		if !utils.IsValidEventTitle(*req.Title) {
			utils.SendValidationError(c, "Title must be at least 3 characters")
			return
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		updates["event_date"] = *req.Date
	}
	if req.Time != nil {
		updates["event_time"] = *req.Time
	}
	if req.Location != nil {
		if *req.Location == "" {
			utils.SendValidationError(c, "Location is required")
			return
		}
		updates["location"] = *req.Location
	}
	if req.LocationLatitude != nil && req.LocationLongitude != nil {
		if !utils.IsValidLatitude(*req.LocationLatitude) || !utils.IsValidLongitude(*req.LocationLongitude) {
			utils.SendValidationError(c, "Invalid coordinates")
			return
		}
		updates["location_latitude"] = *req.LocationLatitude
		updates["location_longitude"] = *req.LocationLongitude
	}
	if req.Distance != nil {
		if *req.Distance < 0 {
			utils.SendValidationError(c, "Distance must be positive")
			return
		}
		updates["distance"] = *req.Distance
	}
	if req.GroupName != nil {
		updates["group_name"] = *req.GroupName
	}
	if req.EventType != nil {
		updates["event_type"] = *req.EventType
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 1 {
			utils.SendValidationError(c, "Max participants must be a positive integer")
			return
		}
		updates["max_participants"] = *req.MaxParticipants
	}

	if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	// Tell the roster the plan changed, best effort
	var participants []models.EventParticipant
	if err := ec.db.Where("event_id = ? AND user_id != ?", eventID, userID).Find(&participants).Error; err == nil {
		for _, p := range participants {
			if err := ec.notificationController.CreateEventUpdatedNotification(userID, p.UserID, eventID); err != nil {
				fmt.Printf("Failed to create event update notification: %v\n", err)
			}
		}
	}

	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, event)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	if event.CreatedBy != userID && c.GetString("role") != models.RoleAdmin {
		utils.SendError(c, http.StatusForbidden, "Only the event creator or an admin can delete this event")
		return
	}

	// Collect roster emails before the rows go away
	var rosterUsers []models.User
	ec.db.Model(&models.User{}).
		Joins("JOIN event_participants ON event_participants.user_id = users.id").
		Where("event_participants.event_id = ?", eventID).
		Find(&rosterUsers)

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventParticipant{}).Error; err != nil {
			return err
		}

		chatRepo := ec.chatRepo.WithTx(tx)
		group, err := chatRepo.GetGroupByEvent(eventID)
		if err != nil {
			return err
		}
		if group != nil {
			if err := chatRepo.DeleteGroupCascade(group.ID); err != nil {
				return err
			}
		}

		return tx.Delete(&event).Error
	})
	if err != nil {
		utils.SendServerError(c, fmt.Errorf("event deletion failed: %w", err))
		return
	}

	// Cancellation notices never block the response
	for _, u := range rosterUsers {
		if u.ID == userID {
			continue
		}
		if err := ec.emailService.SendEventCancelledEmail(u.Email, u.Name, event.Title, event.EventDate); err != nil {
			fmt.Printf("Failed to send cancellation email to %s: %v\n", u.Email, err)
		}
	}

	utils.SendMessage(c, "Event deleted successfully")
}

func (ec *EventController) JoinEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	var existing models.EventParticipant
	if err := ec.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Already joined this event")
		return
	}

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if event.MaxParticipants != nil {
			var count int64
			if err := tx.Model(&models.EventParticipant{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*event.MaxParticipants) {
				return errEventFull
			}
		}

		participant := models.EventParticipant{
			EventID: eventID,
			UserID:  userID,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("joined_events", gorm.Expr("joined_events + ?", 1)).Error; err != nil {
			return err
		}

		chatRepo := ec.chatRepo.WithTx(tx)
		group, err := chatRepo.GetGroupByEvent(eventID)
		if err != nil {
			return err
		}
		if group != nil {
			if err := chatRepo.AddMember(group.ID, userID, models.ChatRoleMember); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errEventFull) {
			utils.SendError(c, http.StatusBadRequest, "Event is full")
			return
		}
		// Backstop for two joins racing past the duplicate check: the
		// (event_id, user_id) unique index rejects the second insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendError(c, http.StatusConflict, "Already joined this event")
			return
		}
		utils.SendServerError(c, fmt.Errorf("join failed: %w", err))
		return
	}

	if event.CreatedBy != userID {
		if err := ec.notificationController.CreateEventJoinedNotification(userID, event.CreatedBy, eventID); err != nil {
			fmt.Printf("Failed to create join notification: %v\n", err)
		}
	}

	utils.SendSuccess(c, gin.H{"participant_count": ec.participantCount(eventID)})
}

func (ec *EventController) LeaveEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var participant models.EventParticipant
	if err := ec.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&participant).Error; err != nil {
		utils.SendError(c, http.StatusBadRequest, "Not a participant of this event")
		return
	}

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&participant).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ? AND joined_events > 0", userID).
			UpdateColumn("joined_events", gorm.Expr("joined_events - ?", 1)).Error; err != nil {
			return err
		}

		// The creator's admin seat outlives roster churn; everyone else's
		// chat membership mirrors the roster.
		if userID != event.CreatedBy {
			chatRepo := ec.chatRepo.WithTx(tx)
			group, err := chatRepo.GetGroupByEvent(eventID)
			if err != nil {
				return err
			}
			if group != nil {
				if err := chatRepo.RemoveMember(group.ID, userID); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		utils.SendServerError(c, fmt.Errorf("leave failed: %w", err))
		return
	}

	utils.SendSuccess(c, gin.H{"participant_count": ec.participantCount(eventID)})
}

func (ec *EventController) GetParticipants(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	var participants []models.EventParticipant
	if err := ec.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("joined_at ASC").
		Find(&participants).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	views := make([]models.ParticipantView, 0, len(participants))
	for _, p := range participants {
		// Tolerant read: skip roster rows whose user is gone
		if p.User.ID == "" {
			continue
		}
		views = append(views, models.ParticipantView{
			ID:       p.User.ID,
			Name:     p.User.Name,
			Avatar:   p.User.Avatar,
			JoinedAt: p.JoinedAt,
		})
	}

	utils.SendSuccess(c, views)
}

func (ec *EventController) GetJoinedEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	var participants []models.EventParticipant
	if err := ec.db.Preload("Event").Preload("Event.Creator").Where("user_id = ?", userID).Find(&participants).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	events := make([]models.Event, 0, len(participants))
	for _, participant := range participants {
		events = append(events, participant.Event)
	}

	utils.SendSuccess(c, events)
}

func (ec *EventController) GetCreatedEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	var events []models.Event
	if err := ec.db.Preload("Participants").Where("created_by = ?", userID).Find(&events).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, events)
}

func (ec *EventController) participantCount(eventID string) int64 {
	var count int64
	ec.db.Model(&models.EventParticipant{}).Where("event_id = ?", eventID).Count(&count)
	return count
}

var errEventFull = errors.New("event full")

func validateEventInput(title, location string, distance *float64, maxParticipants *int, lat, lng *float64) string {
	if !utils.IsValidEventTitle(title) {
		return "Title must be at least 3 characters"
	}
	if location == "" {
		return "Location is required"
	}
	if distance != nil && *distance < 0 {
		return "Distance must be positive"
	}
	if maxParticipants != nil && *maxParticipants < 1 {
		return "Max participants must be a positive integer"
	}
	if (lat == nil) != (lng == nil) {
		return "Latitude and longitude must be provided together"
	}
	if lat != nil && (!utils.IsValidLatitude(*lat) || !utils.IsValidLongitude(*lng)) {
		return "Invalid coordinates"
	}
	return ""
}
