// File: /database/database.go
package database

import (
	"fmt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"rct-connect-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventParticipant{},
		&models.ChatGroup{},
		&models.ChatGroupMember{},
		&models.ChatMessage{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
		&models.Notification{},
		&models.CalorieCalculation{},
		&models.StravaConnection{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the hot lookup paths

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_group_created ON chat_messages(group_id, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for chat_messages: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_target_created ON notifications(target_user_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for notifications: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	// Check if we already have users
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:       "user-admin",
			Name:     "Club Admin",
			Email:    "admin@rctconnect.app",
			Password: "$2a$10$dummy", // This should be properly hashed in real scenarios
			Role:     models.RoleAdmin,
		},
		{
			ID:       "user-coach",
			Name:     "Head Coach",
			Email:    "coach@rctconnect.app",
			Password: "$2a$10$dummy",
			Role:     models.RoleCoach,
		},
		{
			ID:       "user-runner",
			Name:     "Jane Runner",
			Email:    "jane@example.com",
			Password: "$2a$10$dummy",
			Role:     models.RoleMember,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Email, err)
		}
	}

	fmt.Println("Database seeded with test users")
	return nil
}
