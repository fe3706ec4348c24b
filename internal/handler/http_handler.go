package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
	"github.com/pesio-ai/be-plt-directory/internal/repository"
	"github.com/pesio-ai/be-plt-directory/internal/service"
)

// AuthAPI is what the handler needs from the auth service.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*service.LoginResponse, error)
	Logout(ctx context.Context, p *service.Principal) error
	Authenticate(ctx context.Context, bearer string) (*service.Principal, error)
}

// CompanyAPI is what the handler needs from the company service.
type CompanyAPI interface {
	List(ctx context.Context, page int) ([]*repository.Company, int64, error)
	Get(ctx context.Context, id int64) (*repository.Company, error)
	Create(ctx context.Context, req service.CreateCompanyRequest) (*repository.Company, error)
	Update(ctx context.Context, id int64, req service.UpdateCompanyRequest) (*repository.Company, error)
	Delete(ctx context.Context, id int64) error
}

// EmployeeAPI is what the handler needs from the employee service.
type EmployeeAPI interface {
	List(ctx context.Context, page int) ([]*repository.Employee, int64, error)
	Get(ctx context.Context, id int64) (*repository.Employee, error)
	Create(ctx context.Context, req service.CreateEmployeeRequest) (*repository.Employee, error)
	Update(ctx context.Context, id int64, req service.UpdateEmployeeRequest) (*repository.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// HTTPHandler translates HTTP requests into service calls and maps outcomes
// to JSON responses.
type HTTPHandler struct {
	auth      AuthAPI
	companies CompanyAPI
	employees EmployeeAPI
	log       zerolog.Logger
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(auth AuthAPI, companies CompanyAPI, employees EmployeeAPI, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		auth:      auth,
		companies: companies,
		employees: employees,
		log:       log,
	}
}

// Routes builds the route table. All resource routes require authentication
// and the administrator role.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()

	admin := func(fn http.HandlerFunc) http.HandlerFunc {
		return h.requireAuth(h.requireRole(service.RoleAdministrator, fn))
	}

	// Login is a GET by contract with existing clients, despite being a
	// mutating action.
	mux.HandleFunc("GET /login", h.login)
	mux.HandleFunc("POST /logout", h.requireAuth(h.logout))

	mux.HandleFunc("GET /company", admin(h.listCompanies))
	mux.HandleFunc("GET /company/{id}", admin(h.getCompany))
	mux.HandleFunc("POST /company", admin(h.createCompany))
	mux.HandleFunc("PUT /company/{id}", admin(h.updateCompany))
	mux.HandleFunc("DELETE /company/{id}", admin(h.deleteCompany))

	mux.HandleFunc("GET /employee", admin(h.listEmployees))
	mux.HandleFunc("GET /employee/{id}", admin(h.getEmployee))
	mux.HandleFunc("POST /employee", admin(h.createEmployee))
	mux.HandleFunc("PUT /employee/{id}", admin(h.updateEmployee))
	mux.HandleFunc("DELETE /employee/{id}", admin(h.deleteEmployee))

	return h.logRequests(mux)
}

// Login handles login requests.
func (h *HTTPHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		h.writeMessage(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	resp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err, "Failed to log in. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"access_token": resp.AccessToken,
		"expires_in":   resp.ExpiresIn,
	})
}

// Logout revokes the caller's current token.
func (h *HTTPHandler) logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := service.PrincipalFromContext(r.Context())
	if !ok {
		h.writeMessage(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	if err := h.auth.Logout(r.Context(), principal); err != nil {
		h.writeError(w, err, "Failed to log out. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "user logged out successfully."})
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *HTTPHandler) writeMessage(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps a classified error to its HTTP status. Internal failures
// get the operation's generic message; the underlying cause stays in the logs.
func (h *HTTPHandler) writeError(w http.ResponseWriter, err error, internalMessage string) {
	status := apperr.HTTPStatus(err)
	message := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Request failed")
		message = internalMessage
	}
	h.writeMessage(w, status, message)
}

// pathID parses the {id} path segment. Anything that is not a positive
// integer cannot resolve to a record.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("resource", r.PathValue("id"))
	}
	return id, nil
}

// pageParam parses the page query parameter, defaulting to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
