package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"emoticon-rest-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiration is used when TokenConfig.Expiration is zero.
const DefaultTokenExpiration = 1000 * time.Second

// Claims is the JWT payload: registered claims plus the user snapshot.
type Claims struct {
	jwt.RegisteredClaims
	User *model.Identity `json:"user,omitempty"`
}

// TokenConfig holds token signing settings.
type TokenConfig struct {
	Secret     string
	Algorithm  string
	Expiration time.Duration
}

// TokenService issues and validates stateless JWT access tokens.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	expiration time.Duration
	now        func() time.Time
}

// NewTokenService creates a token service. Only HMAC algorithms are accepted.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is empty")
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	expiration := cfg.Expiration
	if expiration == 0 {
		expiration = DefaultTokenExpiration
	}

	return &TokenService{
		secret:     []byte(cfg.Secret),
		method:     method,
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// Issue signs a token carrying the user's identity.
func (s *TokenService) Issue(user *model.User) (*model.Token, error) {
	now := s.now()
	identity := user.Identity()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		User: &identity,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &model.Token{AccessToken: signed, TokenType: model.TokenTypeBearer}, nil
}

// Validate verifies signature and time window and returns the embedded identity.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*model.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.User == nil || claims.User.Username == "" {
		return nil, fmt.Errorf("%w: missing user claim", ErrInvalidToken)
	}

	return claims.User, nil
}
