// File: /models/post.go
package models

import (
	"time"
)

type Post struct {
	ID            string      `json:"id" gorm:"primaryKey;size:191"`
	UserID        string      `json:"user_id" gorm:"not null;size:191"`
	Content       string      `json:"content" gorm:"not null;type:text"`
	ImageUrls     StringSlice `json:"image_urls" gorm:"type:json"`
	LikesCount    int         `json:"likes_count" gorm:"default:0"`
	CommentsCount int         `json:"comments_count" gorm:"default:0"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	User     User       `json:"user" gorm:"foreignKey:UserID"`
	Likes    []PostLike `json:"likes" gorm:"foreignKey:PostID"`
	Comments []Comment  `json:"comments" gorm:"foreignKey:PostID"`
}

type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_post_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"post" gorm:"foreignKey:PostID"`
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// FeedResponse represents the paginated feed payload
type FeedResponse struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	HasMore    bool   `json:"has_more"`
	TotalPages int    `json:"total_pages"`
}
