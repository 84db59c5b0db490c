package transport

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Pointer fields distinguish "not provided" from zero values, so a
// caller can set done to false or priority to 0 explicitly.
type PatchUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Priority    *int       `json:"priority"`
}

type PatchTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Priority    *int       `json:"priority"`
	Done        *bool      `json:"done"`
}

func (r *PatchTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Deadline == nil &&
		r.Priority == nil && r.Done == nil
}

func (r *PatchUserRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil
}

type TaskSummary struct {
	ID       uint       `json:"id"`
	Title    string     `json:"title"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Done     bool       `json:"done"`
}
