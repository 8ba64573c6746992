package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/team-collab-api/internal/constants"
	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService manages a user's own notifications. A notification
// addressed to someone else is reported as not found.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's most recent notifications, newest first.
func (s *NotificationService) List(userID uint64) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListForUser(userID, constants.NotificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(userID uint64) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read. Already-read notifications are left alone.
func (s *NotificationService) MarkRead(id, userID uint64) error {
	notification, err := s.findOwned(id, userID)
	if err != nil {
		return err
	}
	if notification.Read {
		return nil
	}

	if err := s.notificationRepo.MarkRead(id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification of the user read.
func (s *NotificationService) MarkAllRead(userID uint64) error {
	if err := s.notificationRepo.MarkAllRead(userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(id, userID uint64) error {
	if _, err := s.findOwned(id, userID); err != nil {
		return err
	}

	if err := s.notificationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (s *NotificationService) findOwned(id, userID uint64) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return notification, nil
}
