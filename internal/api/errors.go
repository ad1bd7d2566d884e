package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/waryix/FightFind/internal/domain"
	"github.com/waryix/FightFind/pkg/response"
)

// respondDomainError maps domain sentinels onto HTTP responses. Anything
// unrecognized is a 500 and gets logged; typed errors pass their message
// through untouched.
func respondDomainError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrSelfConnection):
		response.BadRequest(w, err.Error())

	case errors.Is(err, domain.ErrDuplicateConnection):
		response.Conflict(w, err.Error())

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrConnectionNotFound),
		errors.Is(err, domain.ErrGymNotFound):
		response.NotFound(w, err.Error())

	case errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrNotAccepted),
		errors.Is(err, domain.ErrInvalidTransition):
		response.Forbidden(w, err.Error())

	default:
		logger.Error("unhandled service error",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
		)
		response.InternalError(w, "internal server error")
	}
}
