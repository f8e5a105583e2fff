package httpadapter

import (
	"net/http"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNoSkillsFound):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
