package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-collab-api/internal/dto"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	log         logging.Logger
}

func NewUserHandler(userService *services.UserService, log logging.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// ListUsers returns the user directory
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondInternalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListItemDTOs(users))
}

// GetProfile returns the composite profile of the user in the path
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user))
}

// UpdateMyProfile replaces the acting user's profile
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	type EducationRequest struct {
		School    string `json:"school" binding:"required"`
		Degree    string `json:"degree" binding:"required"`
		Field     string `json:"field" binding:"required"`
		StartYear string `json:"start_year" binding:"required"`
		EndYear   string `json:"end_year" binding:"required"`
	}
	type ExperienceRequest struct {
		Company     string  `json:"company" binding:"required"`
		Position    string  `json:"position" binding:"required"`
		Description string  `json:"description"`
		StartDate   string  `json:"start_date" binding:"required"`
		EndDate     *string `json:"end_date"`
	}
	type LinksRequest struct {
		GitHub    *string `json:"github"`
		LinkedIn  *string `json:"linkedin"`
		Portfolio *string `json:"portfolio"`
	}
	type UpdateProfileRequest struct {
		FullName       string              `json:"full_name" binding:"required,max=100"`
		PhoneNumber    *string             `json:"phone_number"`
		DateOfBirth    *string             `json:"date_of_birth"`
		TimeOfBirth    *string             `json:"time_of_birth"`
		Location       *string             `json:"location"`
		Bio            *string             `json:"bio"`
		Avatar         *string             `json:"avatar"`
		Education      []EducationRequest  `json:"education" binding:"dive"`
		Experience     []ExperienceRequest `json:"experience" binding:"dive"`
		Skills         []string            `json:"skills"`
		Interests      []string            `json:"interests"`
		Certifications []string            `json:"certifications"`
		Links          *LinksRequest       `json:"links"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, invalidBodyMessage)
		return
	}

	input := services.UpdateProfileInput{
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		DateOfBirth:    req.DateOfBirth,
		TimeOfBirth:    req.TimeOfBirth,
		Location:       req.Location,
		Bio:            req.Bio,
		Avatar:         req.Avatar,
		Skills:         req.Skills,
		Interests:      req.Interests,
		Certifications: req.Certifications,
	}
	for _, e := range req.Education {
		input.Education = append(input.Education, models.Education{
			School:    e.School,
			Degree:    e.Degree,
			Field:     e.Field,
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
		})
	}
	for _, e := range req.Experience {
		input.Experience = append(input.Experience, models.Experience{
			Company:     e.Company,
			Position:    e.Position,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
		})
	}
	if req.Links != nil {
		input.Links = &models.Link{
			GitHub:    req.Links.GitHub,
			LinkedIn:  req.Links.LinkedIn,
			Portfolio: req.Links.Portfolio,
		}
	}

	user, err := h.userService.UpdateProfile(userID, input)
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user))
}

func (h *UserHandler) respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrFullNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		respondInternalError(c, h.log, err)
	}
}
