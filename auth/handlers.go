package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/user/taskdash-go/apperror"
)

// Handlers exposes the auth service over HTTP.
type Handlers struct {
	service  *Service
	validate *validator.Validate
}

// NewHandlers creates auth Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user in the system.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.MessageResponse "User created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Missing fields or email already taken"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		// Missing fields get the specific message; shape violations beyond
		// that (bad email format, short password) get the generic one.
		if req.Name == "" || req.Email == "" || req.Password == "" {
			WriteError(w, r, apperror.NewValidationError("Name, Email, and Password are required", nil))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewValidationError("Invalid input", err))
			return
		}

		if _, err := h.service.Register(r.Context(), req); err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, MessageResponse{Message: "User registered successfully"})
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Logs in an existing user and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful, token provided"
// @Failure 400 {object} apperror.ErrorResponse "Missing fields or invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" {
			WriteError(w, r, apperror.NewValidationError("Email and Password are required", nil))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewValidationError("Invalid input", err))
			return
		}

		token, user, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Message: "Login successful",
			Token:   token,
			User:    user.Public(),
		})
	}
}

// HandleMe godoc
// @Summary Get current user's profile
// @Description Returns the name and email of the authenticated user.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.ProfileResponse "Profile of the authenticated user"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /api/auth/me [get]
func (h *Handlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("Not authorized", nil))
			return
		}

		user, err := h.service.Profile(r.Context(), userID)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{User: user.Public()})
	}
}

// writeJSON serializes data to the response with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", slog.String("error", err.Error()))
		}
	}
}

// WriteJSON is the shared success-response writer for handler packages.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data)
}

// WriteError converts any error into the standardized JSON error body. Errors
// that are not AppErrors become a generic 500; their detail goes to the log,
// never to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("Internal Server Error", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", appErr.Error()),
		)
	}

	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
