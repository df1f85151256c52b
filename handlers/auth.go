// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'lar "ince"dir: request'i parse eder, service'i çağırır,
// sonucu JSON envelope ile döner. İş mantığı service katmanındadır —
// handler ASLA doğrudan DB'ye veya Docker'a erişmez.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/pkg/ratelimit"
	"github.com/akinalp/filo/services"
)

// AuthHandler, operatör login endpoint'ini yönetir.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.Limiter
}

// NewAuthHandler, constructor.
// loginLimiter nil ise rate limiting devre dışı kalır (testler için).
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Login godoc
// POST /api/auth/login
// Body: { "username": "...", "password": "..." }
//
// IP bazlı brute-force koruması: pencere içi limit aşılırsa 429 ve
// Retry-After header döner. Başarılı login sayacı sıfırlar.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %d seconds", retryAfter))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, token)
}

// contextKey, context.Value çakışmalarını önlemek için özel key tipi.
type contextKey string

// OperatorContextKey, auth middleware'inin doğrulanmış operatörü
// koyduğu context key'i.
const OperatorContextKey contextKey = "operator"
