package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/waryix/FightFind/internal/domain"
	"github.com/waryix/FightFind/pkg/response"
)

type GymHandler struct {
	gymService *domain.GymService
	logger     *zap.Logger
}

func NewGymHandler(gymService *domain.GymService, logger *zap.Logger) *GymHandler {
	return &GymHandler{
		gymService: gymService,
		logger:     logger,
	}
}

// ListGyms handles GET /gyms. With latitude/longitude it becomes a radius
// search; without, it lists everything best rated first.
func (h *GymHandler) ListGyms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	latStr, longStr := q.Get("latitude"), q.Get("longitude")

	if latStr == "" && longStr == "" {
		gyms, err := h.gymService.ListGyms(r.Context())
		if err != nil {
			respondDomainError(w, r, h.logger, err)
			return
		}
		response.OK(w, gyms)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		response.BadRequest(w, "invalid latitude")
		return
	}
	long, err := strconv.ParseFloat(longStr, 64)
	if err != nil {
		response.BadRequest(w, "invalid longitude")
		return
	}

	var radius float64
	if radiusStr := q.Get("radius"); radiusStr != "" {
		radius, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			response.BadRequest(w, "invalid radius")
			return
		}
	}

	gyms, err := h.gymService.GymsNear(r.Context(), lat, long, radius)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, gyms)
}

type createGymRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	ZipCode     *string  `json:"zip_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Phone       *string  `json:"phone"`
	Website     *string  `json:"website"`
	Description *string  `json:"description"`
	Disciplines *string  `json:"disciplines"`
	Amenities   *string  `json:"amenities"`
}

// CreateGym handles POST /gyms
func (h *GymHandler) CreateGym(w http.ResponseWriter, r *http.Request) {
	var req createGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	gym, err := h.gymService.CreateGym(r.Context(), domain.CreateGymParams{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Website:     req.Website,
		Description: req.Description,
		Disciplines: req.Disciplines,
		Amenities:   req.Amenities,
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.Created(w, gym)
}
