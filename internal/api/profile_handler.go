package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waryix/FightFind/internal/domain"
	"github.com/waryix/FightFind/internal/middleware"
	"github.com/waryix/FightFind/pkg/response"
	"github.com/waryix/FightFind/pkg/validator"
)

type ProfileHandler struct {
	profileService *domain.ProfileService
	userService    *domain.UserService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *domain.ProfileService, userService *domain.UserService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		userService:    userService,
		logger:         logger,
	}
}

type upsertProfileRequest struct {
	Discipline      string   `json:"discipline"`
	ExperienceLevel string   `json:"experience_level"`
	WeightClass     *string  `json:"weight_class"`
	Weight          *int     `json:"weight"`
	Location        string   `json:"location"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Bio             *string  `json:"bio"`
	Availability    *string  `json:"availability"`
	IsActive        *bool    `json:"is_active"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, profile)
}

// UpsertProfile handles POST /profile. Creating and updating go through the
// same idempotent upsert.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var req upsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	var verrs validator.ValidationErrors
	if req.Discipline == "" {
		verrs.Add("discipline", "is required")
	}
	if req.ExperienceLevel == "" {
		verrs.Add("experience_level", "is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		verrs.Add("location", "is required")
	}
	if verrs.HasErrors() {
		response.BadRequest(w, verrs.Error())
		return
	}

	params := domain.UpsertProfileParams{
		UserID:          userID,
		Discipline:      domain.Discipline(req.Discipline),
		ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
		WeightClass:     req.WeightClass,
		Weight:          req.Weight,
		Location:        validator.SanitizeString(req.Location, 255),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Bio:             req.Bio,
		Availability:    req.Availability,
		IsActive:        true,
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	if req.Bio != nil {
		trimmed := validator.SanitizeString(*req.Bio, 2000)
		params.Bio = &trimmed
	}

	profile, err := h.profileService.UpsertProfile(r.Context(), params)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, profile)
}

// RateProfile handles POST /profiles/{userId}/ratings
func (h *ProfileHandler) RateProfile(w http.ResponseWriter, r *http.Request) {
	raterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		response.BadRequest(w, "invalid user id")
		return
	}
	if targetID == raterID {
		response.BadRequest(w, "cannot rate your own profile")
		return
	}

	var req struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	profile, err := h.profileService.AddRating(r.Context(), targetID, req.Score)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, profile)
}

// Me handles GET /me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, user.ToResponse())
}

// SyncMe handles POST /me: the auth collaborator pushes resolved identity
// attributes, mirrored here by upsert.
func (h *ProfileHandler) SyncMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var req struct {
		Email           *string `json:"email"`
		FirstName       *string `json:"first_name"`
		LastName        *string `json:"last_name"`
		ProfileImageURL *string `json:"profile_image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	// The bearer token already carries the verified email; use it when the
	// body leaves it out.
	if req.Email == nil {
		if email, ok := middleware.GetEmail(r.Context()); ok && email != "" {
			req.Email = &email
		}
	}

	user, err := h.userService.SyncUser(r.Context(), domain.UpsertUserParams{
		ID:              userID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, user.ToResponse())
}
