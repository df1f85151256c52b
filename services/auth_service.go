// Package services, business logic katmanını barındırır.
//
// Service katmanı handler (HTTP) ile repository (DB) ve runtime (Docker)
// arasında oturur. Service ASLA http.Request/Response bilmez ve ASLA
// doğrudan SQL çalıştırmaz — repository interface'leri kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService, operatör kimlik doğrulama interface'i.
type AuthService interface {
	// Login, operatör credential'larını doğrular ve access token döner.
	// Yanlış kullanıcı adı ile yanlış şifre aynı hatayı döner —
	// hangi kullanıcı adlarının var olduğu sızdırılmaz.
	Login(ctx context.Context, req *models.LoginRequest) (*AuthToken, error)

	// ValidateAccessToken, token imzasını ve süresini doğrular, claim'leri döner.
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// AuthToken, login sonrası dönen token.
type AuthToken struct {
	AccessToken string          `json:"access_token"`
	Operator    models.Operator `json:"operator"`
}

type authService struct {
	operatorRepo repository.OperatorRepository
	jwtSecret    []byte
	accessExp    time.Duration
}

// NewAuthService, constructor — interface döner.
func NewAuthService(operatorRepo repository.OperatorRepository, jwtSecret string, accessExpMinutes int) AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		jwtSecret:    []byte(jwtSecret),
		accessExp:    time.Duration(accessExpMinutes) * time.Minute,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthToken, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	op, err := s.operatorRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
	}

	token, err := s.generateAccessToken(op)
	if err != nil {
		return nil, err
	}

	// Hash response'a sızmasın — json:"-" var ama yine de temizle
	op.PasswordHash = ""

	return &AuthToken{AccessToken: token, Operator: *op}, nil
}

// generateAccessToken, HS256 imzalı JWT üretir.
func (s *authService) generateAccessToken(op *models.Operator) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		OperatorID: op.ID,
		Username:   op.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Algorithm confusion saldırısına karşı imza metodunu doğrula
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", pkg.ErrUnauthorized)
	}

	return claims, nil
}
