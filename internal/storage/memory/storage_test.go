package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mdillard/todoapi/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{
		Username:     "alice",
		PasswordHash: "hash123",
		Email:        "alice@example.com",
		Name:         "Alice",
		CreatedAt:    time.Now(),
	})
	s.Require().NoError(err)
	s.Equal(model.UserID(1), created.ID)

	retrieved, err := s.storage.GetUser(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("hash123", retrieved.PasswordHash)
}

func (s *StorageSuite) TestCreateUserAssignsSequentialIDs() {
	a, err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice"})
	s.Require().NoError(err)
	b, err := s.storage.CreateUser(s.ctx, &model.User{Username: "bob"})
	s.Require().NoError(err)

	s.Equal(model.UserID(1), a.ID)
	s.Equal(model.UserID(2), b.ID)
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateUsername() {
	_, err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice"})
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, &model.User{Username: "alice"})
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *StorageSuite) TestCreateUserUsernamesAreCaseSensitive() {
	_, err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice"})
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, &model.User{Username: "Alice"})
	s.NoError(err)
}

func (s *StorageSuite) TestConcurrentDuplicateSignupsOnlyOneWins() {
	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.storage.CreateUser(s.ctx, &model.User{Username: "alice"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			s.ErrorIs(err, model.ErrUsernameExists)
		}
	}
	s.Equal(1, successes)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, model.UserID(999))
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice"})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(created.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserReturnsCopy() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", Name: "Alice"})
	s.Require().NoError(err)

	first, err := s.storage.GetUser(s.ctx, created.ID)
	s.Require().NoError(err)
	first.Name = "Mutated"

	second, err := s.storage.GetUser(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Alice", second.Name)
}

// Todo tests

func (s *StorageSuite) TestCreateAndGetTodo() {
	created, err := s.storage.CreateTodo(s.ctx, &model.Todo{
		Title:   "Buy milk",
		Content: "Two litres",
		OwnerID: model.UserID(1),
	})
	s.Require().NoError(err)
	s.Equal(model.TodoID(1), created.ID)

	retrieved, err := s.storage.GetTodo(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Buy milk", retrieved.Title)
	s.Equal(model.UserID(1), retrieved.OwnerID)
}

func (s *StorageSuite) TestGetTodoNotFound() {
	_, err := s.storage.GetTodo(s.ctx, model.TodoID(999))
	s.ErrorIs(err, model.ErrTodoNotFound)
}

func (s *StorageSuite) TestListTodosByOwnerFiltersAndSorts() {
	_, err := s.storage.CreateTodo(s.ctx, &model.Todo{Title: "A1", OwnerID: 1})
	s.Require().NoError(err)
	_, err = s.storage.CreateTodo(s.ctx, &model.Todo{Title: "B1", OwnerID: 2})
	s.Require().NoError(err)
	_, err = s.storage.CreateTodo(s.ctx, &model.Todo{Title: "A2", OwnerID: 1})
	s.Require().NoError(err)

	todos, err := s.storage.ListTodosByOwner(s.ctx, model.UserID(1))
	s.Require().NoError(err)
	s.Require().Len(todos, 2)
	s.Equal("A1", todos[0].Title)
	s.Equal("A2", todos[1].Title)
}

func (s *StorageSuite) TestListTodosByOwnerEmpty() {
	todos, err := s.storage.ListTodosByOwner(s.ctx, model.UserID(1))
	s.Require().NoError(err)
	s.Empty(todos)
}

func (s *StorageSuite) TestSaveTodoUpdatesExisting() {
	created, err := s.storage.CreateTodo(s.ctx, &model.Todo{Title: "Old", OwnerID: 1})
	s.Require().NoError(err)

	created.Title = "New"
	created.Completed = true
	err = s.storage.SaveTodo(s.ctx, created)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTodo(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("New", retrieved.Title)
	s.True(retrieved.Completed)
}

func (s *StorageSuite) TestSaveTodoFailsForMissing() {
	err := s.storage.SaveTodo(s.ctx, &model.Todo{ID: 999, Title: "Ghost"})
	s.ErrorIs(err, model.ErrTodoNotFound)
}

func (s *StorageSuite) TestDeleteTodo() {
	created, err := s.storage.CreateTodo(s.ctx, &model.Todo{Title: "Doomed", OwnerID: 1})
	s.Require().NoError(err)

	err = s.storage.DeleteTodo(s.ctx, created.ID)
	s.Require().NoError(err)

	_, err = s.storage.GetTodo(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrTodoNotFound)
}

func (s *StorageSuite) TestDeleteTodoIsIdempotent() {
	err := s.storage.DeleteTodo(s.ctx, model.TodoID(999))
	s.NoError(err)
}
