package dto

// DevTokenRequest names an existing user to mint a token for.
type DevTokenRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}
