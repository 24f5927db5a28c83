// File: /controllers/post_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"rct-connect-api/models"
	"rct-connect-api/utils"
)

type PostController struct {
	db                     *gorm.DB
	notificationController *NotificationController
}

func NewPostController(db *gorm.DB, notificationController *NotificationController) *PostController {
	return &PostController{
		db:                     db,
		notificationController: notificationController,
	}
}

type CreatePostRequest struct {
	Content   string   `json:"content" binding:"required"`
	ImageUrls []string `json:"image_urls"`
}

type UpdatePostRequest struct {
	Content   *string  `json:"content"`
	ImageUrls []string `json:"image_urls"`
}

func (pc *PostController) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	pc.db.Model(&models.Post{}).Count(&total)

	var posts []models.Post
	if err := pc.db.Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	utils.SendSuccess(c, models.FeedResponse{
		Posts:      posts,
		Page:       page,
		Limit:      limit,
		Total:      total,
		HasMore:    page < totalPages,
		TotalPages: totalPages,
	})
}

func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	post := models.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   req.Content,
		ImageUrls: models.StringSlice(req.ImageUrls),
	}

	if err := pc.db.Create(&post).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	pc.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("posts_count", gorm.Expr("posts_count + ?", 1))

	utils.SendCreated(c, post)
}

func (pc *PostController) GetPost(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.Preload("User").Preload("Comments").Preload("Comments.User").
		First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	utils.SendSuccess(c, post)
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ? AND user_id = ?", postID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found or access denied")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Content != nil {
		if *req.Content == "" {
			utils.SendValidationError(c, "Content cannot be empty")
			return
		}
		updates["content"] = *req.Content
	}
	if req.ImageUrls != nil {
		updates["image_urls"] = models.StringSlice(req.ImageUrls)
	}

	if err := pc.db.Model(&post).Updates(updates).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	utils.SendSuccess(c, post)
}

func (pc *PostController) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ? AND user_id = ?", postID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found or access denied")
		return
	}

	// Delete likes and comments first
	pc.db.Where("post_id = ?", postID).Delete(&models.PostLike{})
	pc.db.Where("post_id = ?", postID).Delete(&models.Comment{})

	if err := pc.db.Delete(&post).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	pc.db.Model(&models.User{}).Where("id = ? AND posts_count > 0", userID).
		UpdateColumn("posts_count", gorm.Expr("posts_count - ?", 1))

	utils.SendMessage(c, "Post deleted successfully")
}

func (pc *PostController) LikePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var existingLike models.PostLike
	if err := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existingLike).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Already liked this post")
		return
	}

	like := models.PostLike{
		PostID: postID,
		UserID: userID,
	}

	if err := pc.db.Create(&like).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	pc.db.Model(&post).UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1))

	if post.UserID != userID {
		if err := pc.notificationController.CreateLikeNotification(userID, post.UserID, postID); err != nil {
			fmt.Printf("Failed to create like notification: %v\n", err)
		}
	}

	utils.SendMessage(c, "Post liked successfully")
}

func (pc *PostController) UnlikePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var like models.PostLike
	if err := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Like not found")
		return
	}

	if err := pc.db.Delete(&like).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	pc.db.Model(&models.Post{}).Where("id = ? AND likes_count > 0", postID).
		UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1))

	utils.SendMessage(c, "Post unliked successfully")
}
