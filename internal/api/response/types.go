package response

import (
	"time"

	"github.com/mdillard/todoapi/internal/model"
	"github.com/mdillard/todoapi/internal/services/auth"
)

// User represents a user in API responses. The password hash never leaves
// the storage layer.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        int64(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse is the response for a successful login.
// The token is a single opaque string; clients must not parse it.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenResponseFromToken creates a TokenResponse from a minted token
func TokenResponseFromToken(t *auth.Token) TokenResponse {
	return TokenResponse{
		Token:     t.Value,
		TokenType: "Bearer",
		ExpiresAt: t.ExpiresAt,
	}
}

// Todo represents a todo in API responses
type Todo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoFromModel converts a model.Todo to a response Todo
func TodoFromModel(t *model.Todo) Todo {
	return Todo{
		ID:        int64(t.ID),
		Title:     t.Title,
		Content:   t.Content,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

// TodoList is the response for listing todos
type TodoList struct {
	Todos []Todo `json:"todos"`
}

// TodoListFromModels converts a slice of model todos
func TodoListFromModels(todos []*model.Todo) TodoList {
	out := make([]Todo, len(todos))
	for i, t := range todos {
		out[i] = TodoFromModel(t)
	}
	return TodoList{Todos: out}
}
