package tasks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/user/taskdash-go/apperror"
	"github.com/user/taskdash-go/auth"
)

// Handlers exposes the task service over HTTP. All routes here sit behind the
// auth middleware; the owner id always comes from the request context.
type Handlers struct {
	service  *Service
	validate *validator.Validate
}

// NewHandlers creates task Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the task routes on r.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreate())
	r.Get("/", h.HandleList())
	r.Put("/{id}", h.HandleUpdate())
	r.Delete("/{id}", h.HandleDelete())
}

// HandleCreate godoc
// @Summary Create a new task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskBody body tasks.CreateTaskRequest true "Task details"
// @Success 201 {object} tasks.TaskResponse "Task created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Missing title or invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Router /api/tasks [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authorized", nil))
			return
		}

		var req CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		if req.Title == "" {
			auth.WriteError(w, r, apperror.NewValidationError("Title is required", nil))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("Invalid input", err))
			return
		}

		task, err := h.service.Create(r.Context(), ownerID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, TaskResponse{
			Message: "Task created successfully",
			Task:    task,
		})
	}
}

// HandleList godoc
// @Summary Get all tasks for the logged-in user
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} tasks.ListResponse "Tasks fetched successfully"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Router /api/tasks [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authorized", nil))
			return
		}

		list, err := h.service.ListMine(r.Context(), ownerID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, ListResponse{
			Count: len(list),
			Tasks: list,
		})
	}
}

// HandleUpdate godoc
// @Summary Update a task by ID
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param taskBody body tasks.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} tasks.TaskResponse "Task updated successfully"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Not the task owner"
// @Failure 404 {object} apperror.ErrorResponse "Task not found"
// @Router /api/tasks/{id} [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authorized", nil))
			return
		}

		taskID, err := taskIDFromURL(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("Invalid input", err))
			return
		}

		task, err := h.service.Update(r.Context(), ownerID, taskID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, TaskResponse{
			Message: "Task updated successfully",
			Task:    task,
		})
	}
}

// HandleDelete godoc
// @Summary Delete a task by ID
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} tasks.MessageResponse "Task deleted successfully"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} apperror.ErrorResponse "Not the task owner"
// @Failure 404 {object} apperror.ErrorResponse "Task not found"
// @Router /api/tasks/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authorized", nil))
			return
		}

		taskID, err := taskIDFromURL(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), ownerID, taskID); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
	}
}

// taskIDFromURL parses the {id} path segment. An id that is not a well-formed
// uuid cannot name any task, so it reads as NotFound rather than a 400.
func taskIDFromURL(r *http.Request) (uuid.UUID, error) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperror.NewNotFoundError("Task not found", err)
	}
	return taskID, nil
}
