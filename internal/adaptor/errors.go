package adaptor

import (
	"errors"
	"net/http"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

// respondServiceError maps service errors to HTTP responses. Sentinels
// travel wrapped through the service layer, so matching is by
// errors.Is, never by message.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, repository.ErrConflict):
		utils.ResponseConflict(w, err.Error())
	default:
		log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
