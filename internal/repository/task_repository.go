package repository

import (
	"github.com/yukikurage/team-collab-api/internal/database"
	"github.com/yukikurage/team-collab-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task and assigns the given users
func (r *GormTaskRepository) Create(task *models.Task, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return assign(tx, task.ID, assigneeIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// Exists reports whether the task exists
func (r *GormTaskRepository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	// Apply filters
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Category != nil {
		query = query.Where("tasks.category = ?", *filter.Category)
	}
	if filter.CreatedBy != nil {
		query = query.Where("tasks.created_by = ?", *filter.CreatedBy)
	}
	if filter.AssigneeID != nil {
		assigneeSubQuery := r.db.Model(&models.TaskAssignee{}).
			Select("1").
			Where("task_assignees.task_id = tasks.id").
			Where("task_assignees.user_id = ?", *filter.AssigneeID)
		query = query.Where("EXISTS (?)", assigneeSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Scopes(database.NewestFirst("tasks"))
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	err := listQuery.
		Preload("Creator").
		Preload("Assignees", orderByAssignedAt).
		Preload("Assignees.User").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update applies column changes and appends activities in one transaction
func (r *GormTaskRepository) Update(taskID uint64, changes map[string]interface{}, activities []models.TaskActivity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Model(&models.Task{ID: taskID}).Updates(changes).Error; err != nil {
				return err
			}
		}
		return createAll(tx, activities)
	})
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// ListAssigneeIDs returns assignee user IDs other than excludeUserID
func (r *GormTaskRepository) ListAssigneeIDs(taskID, excludeUserID uint64) ([]uint64, error) {
	ids := []uint64{}
	err := r.db.Model(&models.TaskAssignee{}).
		Where("task_id = ? AND user_id <> ?", taskID, excludeUserID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReplaceAssignees removes assignees not in userIDs and adds the missing ones.
// Kept assignees retain their original assigned_at.
func (r *GormTaskRepository) ReplaceAssignees(taskID uint64, userIDs []uint64, activity *models.TaskActivity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		remove := tx.Where("task_id = ?", taskID)
		if len(userIDs) > 0 {
			remove = remove.Where("user_id NOT IN ?", userIDs)
		}
		if err := remove.Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		if err := assign(tx, taskID, userIDs); err != nil {
			return err
		}

		if activity != nil {
			return tx.Create(activity).Error
		}
		return nil
	})
}

// SetResultLink stores the result link and appends the activity
func (r *GormTaskRepository) SetResultLink(taskID uint64, link string, activity *models.TaskActivity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{ID: taskID}).Update("result_link", link).Error; err != nil {
			return err
		}
		return tx.Create(activity).Error
	})
}

// assign inserts assignee rows, ignoring pairs that already exist
func assign(tx *gorm.DB, taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	assignees := make([]models.TaskAssignee, len(userIDs))
	for i, userID := range userIDs {
		assignees[i] = models.TaskAssignee{
			TaskID: taskID,
			UserID: userID,
		}
	}

	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(&assignees).Error
}

func orderByAssignedAt(db *gorm.DB) *gorm.DB {
	return db.Order("assigned_at ASC").Order("user_id ASC")
}
