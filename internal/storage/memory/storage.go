package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mdillard/todoapi/internal/model"
	"github.com/mdillard/todoapi/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// The username index and the user insert share one lock, so concurrent
// sign-ups with the same username cannot both succeed.
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	todos         map[model.TodoID]*model.Todo

	nextUserID model.UserID
	nextTodoID model.TodoID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		todos:         make(map[model.TodoID]*model.Todo),
		nextUserID:    1,
		nextTodoID:    1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernameIndex[user.Username]; exists {
		return nil, model.ErrUsernameExists
	}

	u := *user
	u.ID = s.nextUserID
	s.nextUserID++

	s.users[u.ID] = &u
	s.usernameIndex[u.Username] = u.ID
	return &u, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Todo operations

func (s *Storage) CreateTodo(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := *todo
	t.ID = s.nextTodoID
	s.nextTodoID++

	s.todos[t.ID] = &t
	return &t, nil
}

func (s *Storage) GetTodo(ctx context.Context, id model.TodoID) (*model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, model.ErrTodoNotFound
	}
	t := *todo
	return &t, nil
}

func (s *Storage) ListTodosByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*model.Todo, 0)
	for _, todo := range s.todos {
		if todo.OwnerID == ownerID {
			t := *todo
			todos = append(todos, &t)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (s *Storage) SaveTodo(ctx context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[todo.ID]; !ok {
		return model.ErrTodoNotFound
	}
	t := *todo
	s.todos[t.ID] = &t
	return nil
}

func (s *Storage) DeleteTodo(ctx context.Context, id model.TodoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.todos, id)
	return nil
}
