// File: /controllers/comment_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/utils"
)

type CommentController struct {
	db                     *gorm.DB
	notificationController *NotificationController
}

func NewCommentController(db *gorm.DB, notificationController *NotificationController) *CommentController {
	return &CommentController{
		db:                     db,
		notificationController: notificationController,
	}
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := cc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Body:      req.Body,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := cc.db.Create(&comment).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	cc.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1))

	if post.UserID != userID {
		if err := cc.notificationController.CreateCommentNotification(userID, post.UserID, postID); err != nil {
			fmt.Printf("Failed to create comment notification: %v\n", err)
		}
	}

	utils.SendCreated(c, comment)
}

func (cc *CommentController) GetComments(c *gin.Context) {
	postID := c.Param("id")
	var comments []models.Comment
	if err := cc.db.Preload("User").Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}
	utils.SendSuccess(c, comments)
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")
	commentID := c.Param("commentId")

	var comment models.Comment
	if err := cc.db.First(&comment, "id = ? AND user_id = ?", commentID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Comment not found or access denied")
		return
	}

	if err := cc.db.Delete(&comment).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	cc.db.Model(&models.Post{}).Where("id = ? AND comments_count > 0", comment.PostID).
		UpdateColumn("comments_count", gorm.Expr("comments_count - ?", 1))

	utils.SendMessage(c, "Comment deleted successfully")
}
