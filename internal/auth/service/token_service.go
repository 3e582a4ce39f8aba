package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TestTokenExpiry is the lifetime of every token issued to a test identity.
const TestTokenExpiry = 36500 * 24 * time.Hour

// TestIdentities are the user IDs of the built-in seed accounts.
var TestIdentities = []string{"1", "2", "3", "4"}

var testIdentitySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(TestIdentities))
	for _, id := range TestIdentities {
		set[id] = struct{}{}
	}
	return set
}()

// IsTestIdentity reports whether id belongs to one of the seed accounts.
func IsTestIdentity(id string) bool {
	_, ok := testIdentitySet[id]
	return ok
}

type TokenGenerator interface {
	Issue(claim domain.Claim) (domain.TokenPair, error)
	VerifyAccess(tokenString string) Verification
	VerifyRefresh(tokenString string) Verification
}

// VerifyStatus classifies the outcome of a token verification.
type VerifyStatus int

const (
	StatusValid VerifyStatus = iota
	StatusExpired
	StatusSignatureInvalid
	StatusMalformed
)

func (s VerifyStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	case StatusSignatureInvalid:
		return "signature invalid"
	default:
		return "malformed"
	}
}

// Verification is the result of checking a token. Claims is set only when
// Status is StatusValid; Err carries the reason otherwise.
type Verification struct {
	Status VerifyStatus
	Claims *JWTCustomClaims
	Err    error
}

// Valid reports whether the token passed every check.
func (v Verification) Valid() bool {
	return v.Status == StatusValid
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UUID string `json:"UUID"`
}

type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	now func() time.Time
}

// NewTokenService fails when a secret is missing or both secrets are equal,
// so misconfiguration stops the process at startup instead of failing requests.
func NewTokenService(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}
	if accessExpiry <= 0 || refreshExpiry <= 0 {
		return nil, errors.New("token expiries must be positive")
	}

	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  accessExpiry,
		RefreshTokenExpiry: refreshExpiry,
		now:                time.Now,
	}, nil
}

// Issue signs the claim into an access token and a refresh token, each with
// its own secret and expiry. Test identities get TestTokenExpiry for both.
func (ts *TokenService) Issue(claim domain.Claim) (domain.TokenPair, error) {
	accessExpiry, refreshExpiry := ts.AccessTokenExpiry, ts.RefreshTokenExpiry
	if IsTestIdentity(claim.UUID) {
		accessExpiry, refreshExpiry = TestTokenExpiry, TestTokenExpiry
	}

	now := ts.now()

	accessToken, err := sign(claim, now, accessExpiry, ts.AccessTokenSecret)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := sign(claim, now, refreshExpiry, ts.RefreshTokenSecret)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccess checks a token against the access secret.
func (ts *TokenService) VerifyAccess(tokenString string) Verification {
	return ts.verify(tokenString, ts.AccessTokenSecret)
}

// VerifyRefresh checks a token against the refresh secret.
func (ts *TokenService) VerifyRefresh(tokenString string) Verification {
	return ts.verify(tokenString, ts.RefreshTokenSecret)
}

func sign(claim domain.Claim, now time.Time, expiry time.Duration, secret string) (string, error) {
	claims := JWTCustomClaims{
		UUID: claim.UUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (ts *TokenService) verify(tokenString, secret string) Verification {
	claims := &JWTCustomClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithTimeFunc(ts.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Verification{Status: StatusExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Verification{Status: StatusSignatureInvalid, Err: err}
	default:
		return Verification{Status: StatusMalformed, Err: err}
	}

	if claims.UUID == "" {
		return Verification{Status: StatusMalformed, Err: errors.New("token has no UUID claim")}
	}

	return Verification{Status: StatusValid, Claims: claims}
}
