package model

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// Token is returned to clients on sign-up and sign-in.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
