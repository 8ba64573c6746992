package models

import "time"

type Notification struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	UserID      uint64           `gorm:"not null" json:"user_id"`
	Type        NotificationType `gorm:"not null" json:"type"`
	Title       string           `gorm:"not null" json:"title"`
	Message     string           `gorm:"not null" json:"message"`
	Read        bool             `gorm:"column:read;not null" json:"read"`
	TaskID      *uint64          `json:"task_id"`
	QuestID     *uint64          `json:"quest_id"`
	TriggeredBy *uint64          `json:"triggered_by"`
	CreatedAt   time.Time        `json:"created_at"`

	Trigger *User `gorm:"foreignKey:TriggeredBy" json:"-"`
}
