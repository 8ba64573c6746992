package repository

import (
	"github.com/yukikurage/team-collab-api/internal/database"
	"github.com/yukikurage/team-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// CreateBatch inserts notifications as a single parameterized statement
func (r *GormNotificationRepository) CreateBatch(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Omit("Trigger").Create(&notifications).Error
}

// ListForUser lists the newest notifications for a user
func (r *GormNotificationRepository) ListForUser(userID uint64, limit int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.
		Where("user_id = ?", userID).
		Scopes(database.NewestFirst("notifications")).
		Limit(limit).
		Preload("Trigger").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindForUser finds a notification owned by userID
func (r *GormNotificationRepository) FindForUser(id, userID uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkRead marks a notification as read
func (r *GormNotificationRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Notification{ID: id}).Update("read", true).Error
}

// MarkAllRead marks all of a user's notifications as read
func (r *GormNotificationRepository) MarkAllRead(userID uint64) error {
	return r.db.Model(&models.Notification{}).
		Where(map[string]interface{}{"user_id": userID}).
		Update("read", true).Error
}

// Delete deletes a notification
func (r *GormNotificationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Notification{}, id).Error
}

// CountUnread counts a user's unread notifications
func (r *GormNotificationRepository) CountUnread(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where(map[string]interface{}{"user_id": userID, "read": false}).
		Count(&count).Error
	return count, err
}
