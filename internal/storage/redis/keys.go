package redis

import (
	"fmt"

	"github.com/mdillard/todoapi/internal/model"
)

// Key prefix for all application data
const keyPrefix = "todoapi"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user id index.
// Reserving this key is what makes concurrent sign-ups with the same
// username safe.
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// userSeqKey returns the Redis key for the user id sequence
func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}

// todoKey returns the Redis key for a Todo
func todoKey(id model.TodoID) string {
	return fmt.Sprintf("%s:todo:%d", keyPrefix, id)
}

// todoSeqKey returns the Redis key for the todo id sequence
func todoSeqKey() string {
	return fmt.Sprintf("%s:seq:todo", keyPrefix)
}

// ownerTodosIndexKey returns the Redis key for the SET of a user's todo ids
func ownerTodosIndexKey(ownerID model.UserID) string {
	return fmt.Sprintf("%s:idx:todos_for_owner:%d", keyPrefix, ownerID)
}
