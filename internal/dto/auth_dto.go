package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Username    string  `json:"username"  validate:"required,min=1,max=150"`
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Email       *string `json:"email"     validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Password    string  `json:"password"  validate:"required,min=8"`
	Role        string  `json:"role"      validate:"required,oneof=agent admin"`
	LocationID  *string `json:"location_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FullName    string  `json:"full_name"    validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Role        string  `json:"role"         validate:"omitempty,oneof=agent admin"`
	LocationID  *string `json:"location_id"  validate:"omitempty,uuid"`
	Password    string  `json:"password"     validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Role        string  `json:"role"`
	LocationID  *string `json:"location_id"`
	Active      bool    `json:"active"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	User         UserResponse `json:"user"`
}
