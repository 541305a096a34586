package dto

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email" example:"admin@center.com"`
	Password string `json:"password" example:"secret1"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" example:"admin@center.com"`
	Password string `json:"password" example:"secret1"`
}

// AdminInfo is the public view of an administrator
type AdminInfo struct {
	ID    string `json:"id" example:"6c1f3a52-8f0e-4d7e-9a55-2f0d9b8a7c11"`
	Email string `json:"email" example:"admin@center.com"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Success bool      `json:"success" example:"true"`
	Token   string    `json:"token"`
	Admin   AdminInfo `json:"admin"`
}
