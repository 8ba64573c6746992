package dto

import (
	"time"

	"github.com/yukikurage/team-collab-api/internal/models"
)

// NotificationDTO is a notification decorated with whoever triggered it
type NotificationDTO struct {
	ID                  uint64                  `json:"id"`
	UserID              uint64                  `json:"user_id"`
	Type                models.NotificationType `json:"type"`
	Title               string                  `json:"title"`
	Message             string                  `json:"message"`
	Read                bool                    `json:"read"`
	TaskID              *uint64                 `json:"task_id"`
	QuestID             *uint64                 `json:"quest_id"`
	TriggeredBy         *uint64                 `json:"triggered_by"`
	CreatedAt           time.Time               `json:"created_at"`
	TriggeredByUsername *string                 `json:"triggered_by_username"`
	TriggeredByAvatar   *string                 `json:"triggered_by_avatar"`
}

// ToNotificationDTOs converts notifications with their triggers loaded
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	result := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		result[i] = NotificationDTO{
			ID:          n.ID,
			UserID:      n.UserID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			Read:        n.Read,
			TaskID:      n.TaskID,
			QuestID:     n.QuestID,
			TriggeredBy: n.TriggeredBy,
			CreatedAt:   n.CreatedAt,
		}
		if n.Trigger != nil {
			username := n.Trigger.Username
			result[i].TriggeredByUsername = &username
			result[i].TriggeredByAvatar = n.Trigger.Avatar
		}
	}
	return result
}
