package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/repository"
	"gorm.io/gorm"
)

var ErrFullNameRequired = errors.New("full name is required")

// UserService serves the user directory and profiles.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every user ordered by username.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetProfile returns the user with every profile section loaded.
func (s *UserService) GetProfile(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// UpdateProfileInput replaces a user's profile wholesale.
type UpdateProfileInput struct {
	FullName       string
	PhoneNumber    *string
	DateOfBirth    *string
	TimeOfBirth    *string
	Location       *string
	Bio            *string
	Avatar         *string
	Education      []models.Education
	Experience     []models.Experience
	Skills         []string
	Interests      []string
	Certifications []string
	Links          *models.Link
}

// UpdateProfile replaces the profile of userID and returns the stored result.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user := &models.User{
		ID:          userID,
		FullName:    fullName,
		PhoneNumber: input.PhoneNumber,
		DateOfBirth: input.DateOfBirth,
		TimeOfBirth: input.TimeOfBirth,
		Location:    input.Location,
		Bio:         input.Bio,
		Avatar:      input.Avatar,
		Education:   input.Education,
		Experience:  input.Experience,
		Links:       input.Links,
	}
	for _, skill := range nonEmpty(input.Skills) {
		user.Skills = append(user.Skills, models.Skill{Skill: skill})
	}
	for _, interest := range nonEmpty(input.Interests) {
		user.Interests = append(user.Interests, models.Interest{Interest: interest})
	}
	for _, cert := range nonEmpty(input.Certifications) {
		user.Certifications = append(user.Certifications, models.Certification{Certification: cert})
	}

	if err := s.userRepo.ReplaceProfile(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetProfile(userID)
}

// nonEmpty trims values and drops blanks.
func nonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
