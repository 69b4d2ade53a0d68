package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	ROLE_ADMIN = "admin"
)

// TokenClaims is the admin token payload. Review and draft-generation
// endpoints require a token whose Role is ROLE_ADMIN.
type TokenClaims struct {
	User       string `json:"u"`
	Role       string `json:"r"`
	ExpireTime int64  `json:"exp"`
	NotBefore  int64  `json:"nbf"`
}

func NewTokenClaims(user, role string, expireTime int64) TokenClaims {
	return TokenClaims{
		User:       user,
		Role:       role,
		ExpireTime: expireTime,
		NotBefore:  time.Now().Unix() - 1,
	}
}

var (
	ErrInvalidJWT = errors.New("invalid token")
)

func GenerateJWT(info TokenClaims, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"u":   info.User,
		"r":   info.Role,
		"exp": info.ExpireTime,
		"nbf": info.NotBefore,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func VerifyToken(tokenString string, secret []byte) (*TokenClaims, error) {
	claims, err := ParseJWT(tokenString, secret)
	if err != nil {
		return nil, err
	}

	if claims.ExpireTime < time.Now().Unix() || claims.NotBefore > time.Now().Unix() {
		return nil, fmt.Errorf("expired token, %w", ErrInvalidJWT)
	}

	return claims, nil
}

func ParseJWT(tokenString string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v, %w", t.Header["alg"], ErrInvalidJWT)
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWT
	}

	result := &TokenClaims{}
	if v, ok := mc["u"].(string); ok {
		result.User = v
	}
	if v, ok := mc["r"].(string); ok {
		result.Role = v
	}
	if v, ok := mc["exp"].(float64); ok {
		result.ExpireTime = int64(v)
	}
	if v, ok := mc["nbf"].(float64); ok {
		result.NotBefore = int64(v)
	}
	return result, nil
}
