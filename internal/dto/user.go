package dto

import (
	"time"

	"github.com/yukikurage/team-collab-api/internal/models"
)

// UserSummaryDTO is the identity returned by registration and /me
type UserSummaryDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserDTO carries every public user field
type UserDTO struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber *string   `json:"phone_number"`
	DateOfBirth *string   `json:"date_of_birth"`
	TimeOfBirth *string   `json:"time_of_birth"`
	Location    *string   `json:"location"`
	Bio         *string   `json:"bio"`
	Avatar      *string   `json:"avatar"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserListItemDTO is a user directory entry
type UserListItemDTO struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
	Role     string  `json:"role"`
}

// EducationDTO represents an education entry in a profile
type EducationDTO struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear string `json:"start_year"`
	EndYear   string `json:"end_year"`
}

// ExperienceDTO represents a work experience entry in a profile
type ExperienceDTO struct {
	Company     string  `json:"company"`
	Position    string  `json:"position"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// LinksDTO holds profile links; missing values are empty strings
type LinksDTO struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

// ProfileDTO is the composite profile read-model shown to any signed-in
// user. Phone and birth details are left out; only UserDTO carries them.
type ProfileDTO struct {
	ID             uint64          `json:"id"`
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	Avatar         *string         `json:"avatar"`
	Bio            *string         `json:"bio"`
	Location       *string         `json:"location"`
	Education      []EducationDTO  `json:"education"`
	Experience     []ExperienceDTO `json:"experience"`
	Skills         []string        `json:"skills"`
	Interests      []string        `json:"interests"`
	Certifications []string        `json:"certifications"`
	Links          LinksDTO        `json:"links"`
}

// Conversion functions

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		DateOfBirth: user.DateOfBirth,
		TimeOfBirth: user.TimeOfBirth,
		Location:    user.Location,
		Bio:         user.Bio,
		Avatar:      user.Avatar,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserListItemDTOs converts users to directory entries
func ToUserListItemDTOs(users []models.User) []UserListItemDTO {
	result := make([]UserListItemDTO, len(users))
	for i, user := range users {
		result[i] = UserListItemDTO{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Avatar:   user.Avatar,
			Role:     user.Role,
		}
	}
	return result
}

// ToProfileDTO flattens a user with preloaded profile sections
func ToProfileDTO(user models.User) ProfileDTO {
	profile := ProfileDTO{
		ID:             user.ID,
		Username:       user.Username,
		FullName:       user.FullName,
		Email:          user.Email,
		Role:           user.Role,
		Avatar:         user.Avatar,
		Bio:            user.Bio,
		Location:       user.Location,
		Education:      make([]EducationDTO, len(user.Education)),
		Experience:     make([]ExperienceDTO, len(user.Experience)),
		Skills:         make([]string, len(user.Skills)),
		Interests:      make([]string, len(user.Interests)),
		Certifications: make([]string, len(user.Certifications)),
	}

	for i, e := range user.Education {
		profile.Education[i] = EducationDTO{
			School:    e.School,
			Degree:    e.Degree,
			Field:     e.Field,
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
		}
	}
	for i, e := range user.Experience {
		profile.Experience[i] = ExperienceDTO{
			Company:     e.Company,
			Position:    e.Position,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
		}
	}
	for i, s := range user.Skills {
		profile.Skills[i] = s.Skill
	}
	for i, in := range user.Interests {
		profile.Interests[i] = in.Interest
	}
	for i, c := range user.Certifications {
		profile.Certifications[i] = c.Certification
	}
	if user.Links != nil {
		profile.Links = LinksDTO{
			GitHub:    deref(user.Links.GitHub),
			LinkedIn:  deref(user.Links.LinkedIn),
			Portfolio: deref(user.Links.Portfolio),
		}
	}

	return profile
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
