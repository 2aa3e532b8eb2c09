package storage

import (
	"context"

	"github.com/mdillard/todoapi/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	//
	// CreateUser assigns the next numeric id and persists the user. The
	// username uniqueness check and the insert are atomic with respect to
	// concurrent callers; a duplicate fails with model.ErrUsernameExists.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Todo operations
	//
	// CreateTodo assigns the next numeric id and persists the todo.
	CreateTodo(ctx context.Context, todo *model.Todo) (*model.Todo, error)
	GetTodo(ctx context.Context, id model.TodoID) (*model.Todo, error)
	ListTodosByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Todo, error)
	SaveTodo(ctx context.Context, todo *model.Todo) error
	DeleteTodo(ctx context.Context, id model.TodoID) error
}
