package dto

// SignUpRequest is the payload of POST /auth/signup.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,max=254,email"`
	Username string `json:"username" binding:"required,max=150,username"`
}

// SignUpResponse echoes the validated pair.
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest is the payload of POST /auth/token.
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
