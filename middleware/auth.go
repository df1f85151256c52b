// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware zincir şeklinde çalışır: CORS → Auth → Handler.
// Her middleware func(next http.Handler) http.Handler imzasındadır;
// kendi kontrolünü yapar, hata varsa next'i çağırmadan request'i keser.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/filo/handlers"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/repository"
	"github.com/akinalp/filo/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService  services.AuthService
	operatorRepo repository.OperatorRepository
}

func NewAuthMiddleware(authService services.AuthService, operatorRepo repository.OperatorRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService:  authService,
		operatorRepo: operatorRepo,
	}
}

// Require, geçerli bir Bearer token zorunlu kılar.
// Token doğrulandıktan sonra operatör DB'den getirilir — token geçerli
// ama operatör silinmiş olabilir. Operatör context'e eklenir, handler'lar
// handlers.OperatorContextKey ile erişir.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		op, err := m.operatorRepo.GetByUsername(r.Context(), claims.Username)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "operator not found")
			return
		}

		// Hash context'te taşınmamalı
		op.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.OperatorContextKey, op)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
