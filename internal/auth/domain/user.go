package domain

import "time"

// User is a stored account. PasswordHash and RefreshTokenHash hold
// argon2id PHC strings; RefreshTokenHash is empty until the first token
// pair has been issued.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	RefreshTokenHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Claim is the payload embedded in both tokens of a pair.
type Claim struct {
	UUID string `json:"UUID"`
}

// TokenPair is returned to clients and never persisted in plaintext.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
