package repository

import (
	"github.com/yukikurage/team-collab-api/internal/database"
	"github.com/yukikurage/team-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.TaskComment) error {
	return r.db.Omit("User").Create(comment).Error
}

// FindByID finds a comment with its author
func (r *GormCommentRepository) FindByID(id uint64) (*models.TaskComment, error) {
	var comment models.TaskComment
	if err := r.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask lists comments newest first
func (r *GormCommentRepository) ListByTask(taskID uint64) ([]models.TaskComment, error) {
	comments := []models.TaskComment{}
	err := r.db.
		Where("task_id = ?", taskID).
		Scopes(database.NewestFirst("task_comments")).
		Preload("User").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// ListByTask lists activities newest first
func (r *GormActivityRepository) ListByTask(taskID uint64) ([]models.TaskActivity, error) {
	activities := []models.TaskActivity{}
	err := r.db.
		Where("task_id = ?", taskID).
		Scopes(database.NewestFirst("task_activities")).
		Preload("User").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
