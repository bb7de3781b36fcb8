package httpdto

// RegisterRequest is used for POST /api/user/create/
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name,omitempty"`
}

// UserResponse is returned after successful registration
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenRequest is used for POST /api/user/token/
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned after successful authentication
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileResponse is returned from GET /api/user/profile/
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfileRequest is used for PATCH /api/user/profile/
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}
