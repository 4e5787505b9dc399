package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"bulletin/app/models"
	"bulletin/app/services"

	"github.com/gorilla/mux"
)

// UserController handles HTTP requests for accounts
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Signup handles account registration
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var payload models.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	user, err := uc.userService.Signup(&payload)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, "register_success", user)
}

// Login authenticates a user by email and password
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	// Both keys must be present in the request body, even when empty;
	// a missing key is rejected before any schema checks run.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if _, ok := raw["email"]; !ok {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if _, ok := raw["password"]; !ok {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	var payload models.UserLogin
	if err := json.Unmarshal(body, &payload); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	login, err := uc.userService.Login(&payload)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, "login_success", login)
}

// Update handles partial profile updates
func (uc *UserController) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	var payload models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	user, err := uc.userService.UpdateProfile(id, &payload)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, "update_success", user)
}

// Delete removes an account together with its posts and comments
func (uc *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	if err := uc.userService.Delete(id); err != nil {
		sendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePassword replaces the stored password
func (uc *UserController) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	var payload models.PasswordUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := payload.Validate(); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	if err := uc.userService.UpdatePassword(id, payload.NewPassword); err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, "password_updated", nil)
}
