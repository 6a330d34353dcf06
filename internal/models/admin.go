package models

// Credentials is the admin login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is returned after a successful login.
type Token struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
