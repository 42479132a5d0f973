package dto

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,email,max=254"`
	Username  string   `json:"username" validate:"required,min=1,max=30,username"`
	Password  string   `json:"password" validate:"required,min=8,max=72"`
	FullName  string   `json:"fullName" validate:"max=100"`
	Skills    []string `json:"skills" validate:"omitempty,max=50,tags"`
	Interests []string `json:"interests" validate:"omitempty,max=50,tags"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailRequest is bound from the query string.
type VerifyEmailRequest struct {
	Token string `form:"token" json:"token" validate:"required"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
