package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bulletin/app/services"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func sendJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Message: message, Data: data})
}

// sendServiceError maps service failures to client-facing statuses.
// Anything unrecognized is logged server-side and masked as a generic
// internal error.
func sendServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	var berr *services.ModerationBlockedError
	if errors.As(err, &berr) {
		sendJSON(w, http.StatusForbidden, "blocked_toxic_post", map[string]interface{}{
			"model_label": berr.Label,
			"score":       berr.Score,
		})
		return
	}

	var uerr *services.ModerationUnavailableError
	if errors.As(err, &uerr) {
		log.Printf("moderation gateway failure: %v", uerr.Err)
		sendJSON(w, http.StatusInternalServerError, "ai_error", map[string]interface{}{
			"detail": uerr.Err.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrPostNotFound):
		sendJSON(w, http.StatusNotFound, "post_not_found", nil)
	case errors.Is(err, services.ErrUserNotFound):
		sendJSON(w, http.StatusNotFound, "user_not_found", nil)
	case errors.Is(err, services.ErrEmailExists):
		sendJSON(w, http.StatusConflict, "email_already_exists", nil)
	case errors.Is(err, services.ErrUnauthorized):
		sendJSON(w, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, services.ErrNicknameRequired):
		sendJSON(w, http.StatusBadRequest, "nickname_required", nil)
	case errors.Is(err, services.ErrNicknameTooLong):
		sendJSON(w, http.StatusBadRequest, "nickname_too_long", nil)
	case errors.Is(err, services.ErrNicknameDuplicated):
		sendJSON(w, http.StatusConflict, "nickname_duplicated", nil)
	default:
		log.Printf("internal error: %v", err)
		sendJSON(w, http.StatusInternalServerError, "internal_server_error", nil)
	}
}
