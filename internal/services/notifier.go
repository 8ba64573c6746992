package services

import (
	"fmt"

	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/repository"
)

type notificationTemplate struct {
	title   string
	message string
}

var taskTemplates = map[models.NotificationType]notificationTemplate{
	models.NotificationTaskAssigned:  {"Task Assigned", "You have been assigned to a task"},
	models.NotificationTaskUpdated:   {"Task Updated", "A task you are involved in has been updated"},
	models.NotificationTaskCompleted: {"Task Completed", "A task you are involved in has been completed"},
	models.NotificationTaskComment:   {"New Comment", "New comment on your task"},
	models.NotificationTaskResult:    {"Task Result Added", "A result has been added to your task"},
}

// TaskEvent describes a task mutation whose recipients should be notified.
type TaskEvent struct {
	Type       models.NotificationType
	TaskID     uint64
	ActorID    uint64
	Recipients []uint64
}

// Notifier writes notifications for task events. It is called inline after
// the triggering write has been stored.
type Notifier struct {
	notificationRepo repository.NotificationRepository
}

func NewNotifier(notificationRepo repository.NotificationRepository) *Notifier {
	return &Notifier{notificationRepo: notificationRepo}
}

// NotifyTask stores one notification per recipient. The actor and duplicate
// recipients are skipped; an empty recipient set writes nothing.
func (n *Notifier) NotifyTask(event TaskEvent) error {
	tmpl, ok := taskTemplates[event.Type]
	if !ok {
		return fmt.Errorf("no notification template for %q", event.Type)
	}

	taskID := event.TaskID
	actorID := event.ActorID

	seen := make(map[uint64]bool, len(event.Recipients))
	notifications := make([]models.Notification, 0, len(event.Recipients))
	for _, userID := range event.Recipients {
		if userID == actorID || seen[userID] {
			continue
		}
		seen[userID] = true

		notifications = append(notifications, models.Notification{
			UserID:      userID,
			Type:        event.Type,
			Title:       tmpl.title,
			Message:     tmpl.message,
			TaskID:      &taskID,
			TriggeredBy: &actorID,
		})
	}

	if len(notifications) == 0 {
		return nil
	}

	if err := n.notificationRepo.CreateBatch(notifications); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}
