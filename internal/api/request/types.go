package request

// SignUpRequest is the request body for creating an account
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTodoRequest is the request body for creating a todo
type CreateTodoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// UpdateTodoRequest is the request body for updating a todo's text
type UpdateTodoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// SetCompletedRequest is the request body for completing/reopening a todo
type SetCompletedRequest struct {
	Completed bool `json:"completed"`
}
