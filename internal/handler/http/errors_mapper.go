package http

import (
	"errors"
	"net/http"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/service"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/internal/validators"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidToken:        http.StatusUnauthorized,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrWrongTokenUse:       http.StatusUnauthorized,
	service.ErrNotOwner:            http.StatusForbidden,
	service.ErrDocumentNotFound:    http.StatusNotFound,
	service.ErrUnknownCollection:   http.StatusNotFound,

	validators.ErrMissingRequiredFields: http.StatusBadRequest,
	validators.ErrInvalidFieldValue:     http.StatusBadRequest,
	validators.ErrInvalidOwnerID:        http.StatusBadRequest,
	validators.ErrUnknownCollection:     http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError replies with the {error, message} envelope matching err.
// A missing required field gets the {error, required} reply instead.
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, message string) {
	var missing *validators.MissingFieldsError
	if errors.As(err, &missing) {
		log.Warn().Err(err).Msg(message)
		utils.WriteJSON(w, models.MissingFieldsResponse{
			Error:    "Missing required fields",
			Required: missing.Required,
		}, http.StatusBadRequest)
		return
	}

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg(message)
		utils.WriteError(w, status, message, http.StatusText(status))
		return
	}

	log.Warn().Err(err).Int("status", status).Msg(message)
	utils.WriteError(w, status, http.StatusText(status), err.Error())
}
