package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mdillard/todoapi/internal/api/middleware"
	"github.com/mdillard/todoapi/internal/api/request"
	"github.com/mdillard/todoapi/internal/api/response"
	"github.com/mdillard/todoapi/internal/model"
	"github.com/mdillard/todoapi/internal/services/todo"
)

// TodoHandler handles todo endpoints
type TodoHandler struct {
	controller *todo.Controller
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(controller *todo.Controller) *TodoHandler {
	return &TodoHandler{
		controller: controller,
	}
}

// Create handles POST /api/v1/todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Title == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}

	t, err := h.controller.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TodoFromModel(t))
}

// List handles GET /api/v1/todos
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	todos, err := h.controller.List(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TodoListFromModels(todos))
}

// Get handles GET /api/v1/todos/{id}
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	t, err := h.controller.Get(r.Context(), user.ID, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TodoFromModel(t))
}

// Update handles PATCH /api/v1/todos/{id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req request.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Title == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}

	t, err := h.controller.Update(r.Context(), user.ID, id, req.Title, req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TodoFromModel(t))
}

// SetCompleted handles PATCH /api/v1/todos/{id}/completed
func (h *TodoHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req request.SetCompletedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	t, err := h.controller.SetCompleted(r.Context(), user.ID, id, req.Completed)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TodoFromModel(t))
}

// Delete handles DELETE /api/v1/todos/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.controller.Delete(r.Context(), user.ID, id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// todoID parses the {id} path variable, writing an error response on failure
func todoID(w http.ResponseWriter, r *http.Request) (model.TodoID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, NewInvalidRequestError("invalid todo id"))
		return 0, false
	}
	return model.TodoID(id), true
}
