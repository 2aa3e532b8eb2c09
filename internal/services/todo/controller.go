package todo

import (
	"context"
	"log/slog"

	"github.com/mdillard/todoapi/internal/dependencies/clock"
	"github.com/mdillard/todoapi/internal/model"
	"github.com/mdillard/todoapi/internal/services/auth"
	"github.com/mdillard/todoapi/internal/storage"
)

// Controller handles todo operations. Every operation that touches an
// existing todo runs the ownership guard before acting; callers only ever
// see todos they own.
type Controller struct {
	storage storage.Storage
	guard   *auth.Guard
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new todo Controller
func NewController(store storage.Storage, guard *auth.Guard, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: store,
		guard:   guard,
		clock:   clk,
		logger:  logger,
	}
}

// Create adds a todo owned by ownerID. New todos start uncompleted.
func (c *Controller) Create(ctx context.Context, ownerID model.UserID, title, content string) (*model.Todo, error) {
	t := &model.Todo{
		Title:     title,
		Content:   content,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: c.clock.Now(),
	}

	created, err := c.storage.CreateTodo(ctx, t)
	if err != nil {
		return nil, err
	}

	c.logger.Info("todo created",
		slog.Int64("todo_id", int64(created.ID)),
		slog.Int64("owner_id", int64(ownerID)),
	)
	return created, nil
}

// Get returns a todo if userID owns it
func (c *Controller) Get(ctx context.Context, userID model.UserID, id model.TodoID) (*model.Todo, error) {
	return c.fetchOwned(ctx, userID, id)
}

// List returns all todos owned by userID
func (c *Controller) List(ctx context.Context, userID model.UserID) ([]*model.Todo, error) {
	return c.storage.ListTodosByOwner(ctx, userID)
}

// Update replaces a todo's title and content. Completion state and
// ownership are untouched.
func (c *Controller) Update(ctx context.Context, userID model.UserID, id model.TodoID, title, content string) (*model.Todo, error) {
	t, err := c.fetchOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	t.Title = title
	t.Content = content
	if err := c.storage.SaveTodo(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetCompleted marks a todo completed or reopens it
func (c *Controller) SetCompleted(ctx context.Context, userID model.UserID, id model.TodoID, completed bool) (*model.Todo, error) {
	t, err := c.fetchOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	t.Completed = completed
	if err := c.storage.SaveTodo(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a todo if userID owns it
func (c *Controller) Delete(ctx context.Context, userID model.UserID, id model.TodoID) error {
	t, err := c.fetchOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := c.storage.DeleteTodo(ctx, t.ID); err != nil {
		return err
	}

	c.logger.Info("todo deleted",
		slog.Int64("todo_id", int64(t.ID)),
		slog.Int64("owner_id", int64(userID)),
	)
	return nil
}

// fetchOwned loads a todo and runs the ownership guard. The API layer maps
// a guard deny to the same response as a missing todo.
func (c *Controller) fetchOwned(ctx context.Context, userID model.UserID, id model.TodoID) (*model.Todo, error) {
	t, err := c.storage.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.guard.Authorize(userID, t.OwnerID); err != nil {
		return nil, err
	}
	return t, nil
}
