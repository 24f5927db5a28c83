package repositories

import (
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"rct-connect-api/models"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *ChatRepository) WithTx(tx *gorm.DB) *ChatRepository {
	return &ChatRepository{db: tx}
}

// GetGroupByEvent resolves the companion chat group of an event. Returns
// (nil, nil) when the event has no linked group.
func (r *ChatRepository) GetGroupByEvent(eventID string) (*models.ChatGroup, error) {
	var group models.ChatGroup
	err := r.db.Where("event_id = ?", eventID).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// GetGroup retrieves a chat group by id.
func (r *ChatRepository) GetGroup(groupID string) (*models.ChatGroup, error) {
	var group models.ChatGroup
	if err := r.db.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// IsMember reports whether the user currently belongs to the group.
func (r *ChatRepository) IsMember(groupID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ChatGroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddMember inserts a membership row. Idempotent: re-adding an existing
// member is a no-op, so the event creator re-joining their own event keeps
// their admin seed untouched.
func (r *ChatRepository) AddMember(groupID, userID, role string) error {
	member := models.ChatGroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    role,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

// RemoveMember deletes the membership row regardless of role. Event
// membership is the source of truth for chat access.
func (r *ChatRepository) RemoveMember(groupID, userID string) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.ChatGroupMember{}).Error
}

// GetMembers returns the membership joined with each user's current profile.
// Rows whose user no longer exists are dropped.
func (r *ChatRepository) GetMembers(groupID string) ([]models.MemberView, error) {
	var members []models.ChatGroupMember
	if err := r.db.Preload("User").
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	views := make([]models.MemberView, 0, len(members))
	for _, m := range members {
		if m.User.ID == "" {
			continue
		}
		views = append(views, models.MemberView{
			UserID:   m.UserID,
			Name:     m.User.Name,
			Avatar:   m.User.Avatar,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return views, nil
}

// GetMessages returns the group's messages oldest first, enriched with the
// sender's current name and avatar.
func (r *ChatRepository) GetMessages(groupID string) ([]models.MessageView, error) {
	var messages []models.ChatMessage
	if err := r.db.Preload("Sender").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	views := make([]models.MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, models.MessageView{
			ID:           m.ID,
			SenderID:     m.SenderID,
			SenderName:   m.Sender.Name,
			SenderAvatar: m.Sender.Avatar,
			Content:      m.Content,
			CreatedAt:    m.CreatedAt,
		})
	}
	return views, nil
}

// DeleteGroupCascade removes a group with its memberships and messages.
// Callers run this inside the same transaction as the event delete.
func (r *ChatRepository) DeleteGroupCascade(groupID string) error {
	if err := r.db.Where("group_id = ?", groupID).Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("group_id = ?", groupID).Delete(&models.ChatGroupMember{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.ChatGroup{}, "id = ?", groupID).Error
}
