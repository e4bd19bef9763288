package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMissingToken = errors.New("request does not contain an access token")
	ErrInvalidToken = errors.New("invalid or expired access token")
)

type JWTClaim struct {
	Id string `json:"id"`
	jwt.RegisteredClaims
}

// Get user object ID from JWTClaim.
func (j JWTClaim) GetUserObjectId() (primitive.ObjectID, error) {
	userId, err := primitive.ObjectIDFromHex(j.Id)
	if err != nil {
		return primitive.NilObjectID, err
	}

	return userId, nil
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Generate auth token for a user session.
func (m *TokenManager) Generate(userID primitive.ObjectID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := JWTClaim{
		Id: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Validate a signed jwt auth token and its expiration time.
func (m *TokenManager) Validate(signedToken string) (JWTClaim, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&JWTClaim{},
		func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return JWTClaim{}, ErrInvalidToken
	}

	claim, ok := token.Claims.(*JWTClaim)
	if !ok || !token.Valid {
		return JWTClaim{}, ErrInvalidToken
	}

	if _, err := claim.GetUserObjectId(); err != nil {
		return JWTClaim{}, ErrInvalidToken
	}

	return *claim, nil
}

// RemainingTTL is how long the claim stays valid from now.
func (j JWTClaim) RemainingTTL() time.Duration {
	if j.ExpiresAt == nil {
		return 0
	}
	return time.Until(j.ExpiresAt.Time)
}
