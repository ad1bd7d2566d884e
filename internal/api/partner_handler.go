package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/waryix/FightFind/internal/domain"
	"github.com/waryix/FightFind/pkg/response"
)

type PartnerHandler struct {
	profileService *domain.ProfileService
	maxLimit       int
	logger         *zap.Logger
}

func NewPartnerHandler(profileService *domain.ProfileService, maxLimit int, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		profileService: profileService,
		maxLimit:       maxLimit,
		logger:         logger,
	}
}

// Search handles GET /partners. All filters are optional; latitude and
// longitude must come together, radius defaults to 25 miles.
func (h *PartnerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := domain.SearchFilters{
		Discipline:      domain.Discipline(q.Get("discipline")),
		ExperienceLevel: domain.ExperienceLevel(q.Get("experienceLevel")),
		Location:        q.Get("location"),
	}

	latStr, longStr := q.Get("latitude"), q.Get("longitude")
	if latStr != "" || longStr != "" {
		if latStr == "" || longStr == "" {
			response.BadRequest(w, "latitude and longitude must be provided together")
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
		geo := &domain.GeoFilter{Latitude: lat, Longitude: long}
		if radiusStr := q.Get("radius"); radiusStr != "" {
			radius, err := strconv.ParseFloat(radiusStr, 64)
			if err != nil {
				response.BadRequest(w, "invalid radius")
				return
			}
			geo.RadiusMiles = radius
		}
		filters.Geo = geo
	}

	var limit, offset int
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "invalid limit")
			return
		}
		limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "invalid offset")
			return
		}
		offset = n
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	filters.Limit = limit
	filters.Offset = offset

	results, err := h.profileService.SearchPartners(r.Context(), filters)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, results)
}
