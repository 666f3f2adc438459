package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "email", loginReq.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", tokenResponse)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req auth.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := a.authService.ChangePassword(r.Context(), actor, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}

// requireActor writes a 401 and reports false when AuthRequired did not run.
func requireActor(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return user.Actor{}, false
	}
	return actor, true
}

// uuidParam reads a UUID path parameter, answering 400 when it is malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid "+name, map[string]string{name: "must be a valid UUID"})
		return "", false
	}
	return id, true
}

// employeeIDQuery reads the optional employee_id filter.
func employeeIDQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("employee_id")
	if id != "" && !validator.IsValidUUID(id) {
		response.ValidationError(w, map[string]string{"employee_id": "employee_id must be a valid UUID"})
		return "", false
	}
	return id, true
}
