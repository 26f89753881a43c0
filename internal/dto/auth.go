package dto

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}
