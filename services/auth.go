package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const CLAIMS_KEY = "user"

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.StandardClaims
}

type AuthService struct {
	secret     []byte
	expiration time.Duration
}

func NewAuthService(secret string, expiration time.Duration) *AuthService {
	return &AuthService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

func (a *AuthService) CreateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:    user.ID.Hex(),
		Email: user.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(a.expiration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return a.secret, nil
		},
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Accepts "Bearer <token>" and the bare token
func ExtractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func NewClaimsFromContext(ctx *gin.Context) (*Claims, bool) {
	value, exists := ctx.Get(CLAIMS_KEY)
	if !exists {
		return &Claims{}, false
	}
	claims, ok := value.(*Claims)
	if !ok {
		return &Claims{}, false
	}
	return claims, true
}
