package dto

// LoginRequest represents the credentials for a password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         UserResponse `json:"user"`
}

// RefreshTokenRequest carries the refresh token when it is not sent as a cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// GoogleCallbackRequest carries an ID token posted directly by a client.
type GoogleCallbackRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
