package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mdillard/todoapi/internal/model"
	"github.com/mdillard/todoapi/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// reservationTTL bounds how long a username stays reserved if the process
// dies between the reservation and the pipelined user write. The final
// index Set replaces the reservation with a persistent entry.
const reservationTTL = time.Minute

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	// Reserve the username first; SETNX is the uniqueness constraint, so
	// at most one of two concurrent sign-ups can get past this line
	indexKey := usernameIndexKey(user.Username)
	reserved, err := s.client.SetNX(ctx, indexKey, "0", reservationTTL).Result()
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, model.ErrUsernameExists
	}

	id, err := s.client.Incr(ctx, userSeqKey()).Result()
	if err != nil {
		s.client.Del(ctx, indexKey)
		return nil, err
	}

	u := *user
	u.ID = model.UserID(id)

	data, err := json.Marshal(&u)
	if err != nil {
		s.client.Del(ctx, indexKey)
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(u.ID), data, 0)
	pipe.Set(ctx, indexKey, strconv.FormatInt(id, 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		// Release the reservation so the username is not burned forever
		s.client.Del(ctx, indexKey)
		return nil, err
	}

	return &u, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id == 0 {
		// "0" is the transient reservation placeholder written by
		// CreateUser before the record lands
		return nil, model.ErrUserNotFound
	}

	return s.GetUser(ctx, model.UserID(id))
}

// Todo operations

func (s *Storage) CreateTodo(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	id, err := s.client.Incr(ctx, todoSeqKey()).Result()
	if err != nil {
		return nil, err
	}

	t := *todo
	t.ID = model.TodoID(id)

	data, err := json.Marshal(&t)
	if err != nil {
		return nil, err
	}

	// Use pipeline for atomic save + owner index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, todoKey(t.ID), data, 0)
	pipe.SAdd(ctx, ownerTodosIndexKey(t.OwnerID), int64(t.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Storage) GetTodo(ctx context.Context, id model.TodoID) (*model.Todo, error) {
	data, err := s.client.Get(ctx, todoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTodoNotFound
		}
		return nil, err
	}

	var todo model.Todo
	if err := json.Unmarshal(data, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *Storage) ListTodosByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Todo, error) {
	ids, err := s.client.SMembers(ctx, ownerTodosIndexKey(ownerID)).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Todo{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, todoKey(model.TodoID(id)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	todos := make([]*model.Todo, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Stale index entry
		}
		var todo model.Todo
		if err := json.Unmarshal([]byte(val.(string)), &todo); err != nil {
			continue // Skip invalid data
		}
		todos = append(todos, &todo)
	}

	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (s *Storage) SaveTodo(ctx context.Context, todo *model.Todo) error {
	exists, err := s.client.Exists(ctx, todoKey(todo.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrTodoNotFound
	}

	data, err := json.Marshal(todo)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, todoKey(todo.ID), data, 0).Err()
}

func (s *Storage) DeleteTodo(ctx context.Context, id model.TodoID) error {
	todo, err := s.GetTodo(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTodoNotFound) {
			return nil
		}
		return err
	}

	// Delete the record and its index entry together
	pipe := s.client.Pipeline()
	pipe.Del(ctx, todoKey(id))
	pipe.SRem(ctx, ownerTodosIndexKey(todo.OwnerID), int64(id))
	_, err = pipe.Exec(ctx)
	return err
}
