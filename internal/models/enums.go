package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
)

// Unknown is what any enum column reads back as when the stored value is not
// one we recognise. It is never written.
const Unknown = "unknown"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusUnknown    TaskStatus = Unknown
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

func (s *TaskStatus) Scan(value any) error {
	raw, err := scanString(value)
	if err != nil {
		return err
	}
	v := TaskStatus(normalize(raw))
	if v == "todo" {
		v = TaskStatusPending
	} else if v == "done" {
		v = TaskStatusCompleted
	}
	if !v.IsValid() {
		v = TaskStatusUnknown
	}
	*s = v
	return nil
}

func (s TaskStatus) Value() (driver.Value, error) {
	return enumValue(string(s), s.IsValid())
}

type TaskPriority string

const (
	TaskPriorityLow     TaskPriority = "low"
	TaskPriorityMedium  TaskPriority = "medium"
	TaskPriorityHigh    TaskPriority = "high"
	TaskPriorityUnknown TaskPriority = Unknown
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

func (p *TaskPriority) Scan(value any) error {
	raw, err := scanString(value)
	if err != nil {
		return err
	}
	v := TaskPriority(normalize(raw))
	if !v.IsValid() {
		v = TaskPriorityUnknown
	}
	*p = v
	return nil
}

func (p TaskPriority) Value() (driver.Value, error) {
	return enumValue(string(p), p.IsValid())
}

// TaskCategory is open-ended: the built-ins below plus any custom slug the
// client's category manager creates.
type TaskCategory string

const (
	TaskCategorySales       TaskCategory = "sales"
	TaskCategoryDevelopment TaskCategory = "development"
	TaskCategoryDesign      TaskCategory = "design"
	TaskCategoryMarketing   TaskCategory = "marketing"
	TaskCategoryHR          TaskCategory = "hr"
	TaskCategoryFinance     TaskCategory = "finance"
	TaskCategorySupport     TaskCategory = "support"
	TaskCategoryUnknown     TaskCategory = Unknown
)

var categorySlug = regexp.MustCompile(`^[a-z0-9_-]{1,50}$`)

func (c TaskCategory) IsBuiltin() bool {
	switch c {
	case TaskCategorySales, TaskCategoryDevelopment, TaskCategoryDesign, TaskCategoryMarketing,
		TaskCategoryHR, TaskCategoryFinance, TaskCategorySupport:
		return true
	}
	return false
}

func (c TaskCategory) IsValid() bool {
	return c != TaskCategoryUnknown && categorySlug.MatchString(string(c))
}

func (c *TaskCategory) Scan(value any) error {
	raw, err := scanString(value)
	if err != nil {
		return err
	}
	v := TaskCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !v.IsValid() {
		v = TaskCategoryUnknown
	}
	*c = v
	return nil
}

func (c TaskCategory) Value() (driver.Value, error) {
	return enumValue(string(c), c.IsValid())
}

type ActivityType string

const (
	ActivityStatusChange   ActivityType = "status_change"
	ActivityEdit           ActivityType = "edit"
	ActivityAssigneeChange ActivityType = "assignee_change"
	ActivityComment        ActivityType = "comment"
	ActivityResult         ActivityType = "result"
	ActivityUnknown        ActivityType = Unknown
)

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityStatusChange, ActivityEdit, ActivityAssigneeChange, ActivityComment, ActivityResult:
		return true
	}
	return false
}

func (a *ActivityType) Scan(value any) error {
	raw, err := scanString(value)
	if err != nil {
		return err
	}
	v := ActivityType(normalize(raw))
	if !v.IsValid() {
		v = ActivityUnknown
	}
	*a = v
	return nil
}

func (a ActivityType) Value() (driver.Value, error) {
	return enumValue(string(a), a.IsValid())
}

type NotificationType string

const (
	NotificationTaskAssigned   NotificationType = "task_assigned"
	NotificationTaskUpdated    NotificationType = "task_updated"
	NotificationTaskCompleted  NotificationType = "task_completed"
	NotificationTaskComment    NotificationType = "task_comment"
	NotificationTaskResult     NotificationType = "task_result"
	NotificationQuestAccepted  NotificationType = "quest_accepted"
	NotificationQuestCompleted NotificationType = "quest_completed"
	NotificationUnknown        NotificationType = Unknown
)

func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationTaskAssigned, NotificationTaskUpdated, NotificationTaskCompleted,
		NotificationTaskComment, NotificationTaskResult,
		NotificationQuestAccepted, NotificationQuestCompleted:
		return true
	}
	return false
}

func (n *NotificationType) Scan(value any) error {
	raw, err := scanString(value)
	if err != nil {
		return err
	}
	v := NotificationType(normalize(raw))
	if !v.IsValid() {
		v = NotificationUnknown
	}
	*n = v
	return nil
}

func (n NotificationType) Value() (driver.Value, error) {
	return enumValue(string(n), n.IsValid())
}

// normalize maps legacy spellings ("In Progress", "in-progress") onto the
// canonical snake_case form.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func scanString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into enum", value)
	}
}

func enumValue(s string, valid bool) (driver.Value, error) {
	if !valid {
		return nil, fmt.Errorf("refusing to write invalid enum value %q", s)
	}
	return s, nil
}
