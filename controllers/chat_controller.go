// File: /controllers/chat_controller.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/repositories"
	"rct-connect-api/utils"
)

type ChatController struct {
	db       *gorm.DB
	chatRepo *repositories.ChatRepository
}

func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{
		db:       db,
		chatRepo: repositories.NewChatRepository(db),
	}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// resolveEventGroup loads the companion group of an event and verifies the
// requester is a member. Access to event chat is participation, nothing
// else: system admins and even the creator get 403 without a membership row.
func (cc *ChatController) resolveEventGroup(c *gin.Context, eventID, userID string) *models.ChatGroup {
	var event models.Event
	if err := cc.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return nil
	}

	group, err := cc.chatRepo.GetGroupByEvent(eventID)
	if err != nil {
		utils.SendServerError(c, err)
		return nil
	}
	if group == nil {
		utils.SendError(c, http.StatusNotFound, "Event has no chat group")
		return nil
	}

	isMember, err := cc.chatRepo.IsMember(group.ID, userID)
	if err != nil {
		utils.SendServerError(c, err)
		return nil
	}
	if !isMember {
		utils.SendError(c, http.StatusForbidden, "Only event participants can access this chat")
		return nil
	}

	return group
}

func (cc *ChatController) GetEventGroup(c *gin.Context) {
	group := cc.resolveEventGroup(c, c.Param("id"), c.GetString("user_id"))
	if group == nil {
		return
	}
	utils.SendSuccess(c, group)
}

func (cc *ChatController) GetEventMessages(c *gin.Context) {
	group := cc.resolveEventGroup(c, c.Param("id"), c.GetString("user_id"))
	if group == nil {
		return
	}

	messages, err := cc.chatRepo.GetMessages(group.ID)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}
	utils.SendSuccess(c, messages)
}

func (cc *ChatController) SendEventMessage(c *gin.Context) {
	userID := c.GetString("user_id")
	group := cc.resolveEventGroup(c, c.Param("id"), userID)
	if group == nil {
		return
	}
	cc.postMessage(c, group.ID, userID)
}

func (cc *ChatController) GetEventMembers(c *gin.Context) {
	group := cc.resolveEventGroup(c, c.Param("id"), c.GetString("user_id"))
	if group == nil {
		return
	}

	members, err := cc.chatRepo.GetMembers(group.ID)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}
	utils.SendSuccess(c, members)
}

// CreateGroup creates a general-purpose (non-event) chat group. Event-linked
// groups are only ever provisioned through event creation.
func (cc *ChatController) CreateGroup(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		utils.SendValidationError(c, "Group name is required")
		return
	}

	group := models.ChatGroup{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedBy:   userID,
	}

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return cc.chatRepo.WithTx(tx).AddMember(group.ID, userID, models.ChatRoleAdmin)
	})
	if err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendCreated(c, group)
}

func (cc *ChatController) GetMyGroups(c *gin.Context) {
	userID := c.GetString("user_id")

	var groups []models.ChatGroup
	if err := cc.db.
		Joins("JOIN chat_group_members ON chat_group_members.group_id = chat_groups.id").
		Where("chat_group_members.user_id = ?", userID).
		Order("chat_groups.updated_at DESC").
		Find(&groups).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, groups)
}

// resolveGroup is the direct-id variant of the access gate, used for
// general-purpose groups. The membership rule is identical.
func (cc *ChatController) resolveGroup(c *gin.Context, groupID, userID string) *models.ChatGroup {
	group, err := cc.chatRepo.GetGroup(groupID)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Chat group not found")
		return nil
	}

	isMember, err := cc.chatRepo.IsMember(group.ID, userID)
	if err != nil {
		utils.SendServerError(c, err)
		return nil
	}
	if !isMember {
		utils.SendError(c, http.StatusForbidden, "Only group members can access this chat")
		return nil
	}

	return group
}

func (cc *ChatController) GetGroupMessages(c *gin.Context) {
	group := cc.resolveGroup(c, c.Param("id"), c.GetString("user_id"))
	if group == nil {
		return
	}

	messages, err := cc.chatRepo.GetMessages(group.ID)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}
	utils.SendSuccess(c, messages)
}

func (cc *ChatController) SendGroupMessage(c *gin.Context) {
	userID := c.GetString("user_id")
	group := cc.resolveGroup(c, c.Param("id"), userID)
	if group == nil {
		return
	}
	cc.postMessage(c, group.ID, userID)
}

func (cc *ChatController) GetGroupMembers(c *gin.Context) {
	group := cc.resolveGroup(c, c.Param("id"), c.GetString("user_id"))
	if group == nil {
		return
	}

	members, err := cc.chatRepo.GetMembers(group.ID)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}
	utils.SendSuccess(c, members)
}

func (cc *ChatController) postMessage(c *gin.Context, groupID, senderID string) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		utils.SendValidationError(c, "Message content cannot be empty")
		return
	}

	message := models.ChatMessage{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := cc.db.Create(&message).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	var sender models.User
	if err := cc.db.First(&sender, "id = ?", senderID).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendCreated(c, models.MessageView{
		ID:           message.ID,
		SenderID:     senderID,
		SenderName:   sender.Name,
		SenderAvatar: sender.Avatar,
		Content:      message.Content,
		CreatedAt:    message.CreatedAt,
	})
}
