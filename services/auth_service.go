package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"pelada-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService reads JWT_SECRET and TOKEN_TTL from the environment.
// TOKEN_TTL accepts time.ParseDuration syntax and defaults to 24h.
func NewAuthService(db *gorm.DB) *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid TOKEN_TTL %q: %v", raw, err)
		}
		ttl = parsed
	}

	return &AuthService{DB: db, secret: []byte(secret), tokenTTL: ttl}
}

// Principal is the verified identity attached to each request.
type Principal struct {
	ID      string
	Profile string
}

// LoginResult carries the signed token plus the authenticated user.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// Login verifies e-mail and password against active accounts and issues an
// HS256 JWT with the user id as subject and the profile as a claim. Bad
// credentials and deactivated accounts both come back as ErrUnauthorized,
// never distinguishing which one failed.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}

	if !user.Active {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     user.ID,
		"profile": user.Profile,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate verifies a bearer token and re-resolves the account, so tokens
// of deactivated users stop working immediately.
func (s *AuthService) Authenticate(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	var user models.User
	if err := s.DB.Where("id = ? AND active = ?", sub, true).First(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: account no longer active", ErrUnauthorized)
	}

	return &Principal{ID: user.ID, Profile: user.Profile}, nil
}
