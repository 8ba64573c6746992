package repository

import (
	"github.com/yukikurage/team-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail checks both uniqueness rules with one query
func (r *GormUserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?) OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all users ordered by username
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByIDs counts how many of the given user IDs exist
func (r *GormUserRepository) CountByIDs(ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// FindProfile finds a user with all profile sections preloaded
func (r *GormUserRepository) FindProfile(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("end_year DESC").Order("id ASC")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			// Open-ended positions have no end date and sort after dated ones.
			return db.Order("CASE WHEN end_date IS NULL THEN 1 ELSE 0 END").Order("end_date DESC").Order("id ASC")
		}).
		Preload("Skills", orderByID).
		Preload("Interests", orderByID).
		Preload("Certifications", orderByID).
		Preload("Links").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ReplaceProfile updates base fields and swaps out every profile section
func (r *GormUserRepository) ReplaceProfile(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{ID: user.ID}).
			Select("full_name", "phone_number", "date_of_birth", "time_of_birth", "location", "bio", "avatar").
			Updates(models.User{
				FullName:    user.FullName,
				PhoneNumber: user.PhoneNumber,
				DateOfBirth: user.DateOfBirth,
				TimeOfBirth: user.TimeOfBirth,
				Location:    user.Location,
				Bio:         user.Bio,
				Avatar:      user.Avatar,
			}).Error
		if err != nil {
			return err
		}

		sections := []interface{}{
			&models.Education{},
			&models.Experience{},
			&models.Skill{},
			&models.Interest{},
			&models.Certification{},
			&models.Link{},
		}
		for _, section := range sections {
			if err := tx.Where("user_id = ?", user.ID).Delete(section).Error; err != nil {
				return err
			}
		}

		for i := range user.Education {
			user.Education[i].ID = 0
			user.Education[i].UserID = user.ID
		}
		for i := range user.Experience {
			user.Experience[i].ID = 0
			user.Experience[i].UserID = user.ID
		}
		for i := range user.Skills {
			user.Skills[i].ID = 0
			user.Skills[i].UserID = user.ID
		}
		for i := range user.Interests {
			user.Interests[i].ID = 0
			user.Interests[i].UserID = user.ID
		}
		for i := range user.Certifications {
			user.Certifications[i].ID = 0
			user.Certifications[i].UserID = user.ID
		}

		if err := createAll(tx, user.Education); err != nil {
			return err
		}
		if err := createAll(tx, user.Experience); err != nil {
			return err
		}
		if err := createAll(tx, user.Skills); err != nil {
			return err
		}
		if err := createAll(tx, user.Interests); err != nil {
			return err
		}
		if err := createAll(tx, user.Certifications); err != nil {
			return err
		}

		if user.Links != nil {
			user.Links.ID = 0
			user.Links.UserID = user.ID
			if err := tx.Create(user.Links).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// createAll batch-inserts rows, skipping the statement for an empty slice.
func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
