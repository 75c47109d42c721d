// Package auth is the credential boundary: password hashing, bearer-token
// issuance and verification. Everything past authenticate(token) ->
// principal is out of scope for the core pipeline.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/whoisaditya/IWP-Backend/config"
)

const (
	SubjectUser  = "user"
	SubjectShop  = "shop"
	SubjectEmail = "email"
)

var ErrInvalidToken = errors.New("invalid or expired token")

func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs a bearer token for a principal. kind is SubjectUser or
// SubjectShop; the token also has to be present in the principal's token
// list to be accepted, so logout can revoke it.
func IssueToken(kind string, id uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  kind,
		"id":   id,
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}

// ParseToken verifies signature and kind and returns the principal id.
func ParseToken(tokenString, wantKind string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return config.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if kind, _ := claims["sub"].(string); kind != wantKind {
		return 0, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// IssueEmailToken signs the short-lived verification token mailed to new
// buyers.
func IssueEmailToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": SubjectEmail,
		"id":  userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.EmailSecret())
}

// ParseEmailToken verifies a confirmation token and returns the user id.
func ParseEmailToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return config.EmailSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if kind, _ := claims["sub"].(string); kind != SubjectEmail {
		return 0, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
