package models

import "time"

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus   `gorm:"not null" json:"status"`
	Priority    TaskPriority `gorm:"not null" json:"priority"`
	Category    TaskCategory `gorm:"not null" json:"category"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedBy   uint64       `gorm:"not null" json:"created_by"`
	ResultLink  *string      `json:"result_link"`
	CreatedAt   time.Time    `json:"created_at"`

	// Relations
	Creator    *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignees  []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignees,omitempty"`
	Comments   []TaskComment  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Activities []TaskActivity `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

// TaskAssignee links a user to a task. (task_id, user_id) is the primary key.
type TaskAssignee struct {
	TaskID     uint64    `gorm:"primarykey;autoIncrement:false" json:"task_id"`
	UserID     uint64    `gorm:"primarykey;autoIncrement:false" json:"user_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type TaskComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null" json:"task_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TaskActivity is an append-only entry in a task's event log.
type TaskActivity struct {
	ID         uint64       `gorm:"primarykey" json:"id"`
	TaskID     uint64       `gorm:"not null" json:"task_id"`
	UserID     uint64       `gorm:"not null" json:"user_id"`
	Type       ActivityType `gorm:"not null" json:"type"`
	Content    string       `gorm:"type:text;not null" json:"content"`
	ResultLink *string      `json:"result_link"`
	CreatedAt  time.Time    `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
