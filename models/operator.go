package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Operator, fleet API'yi kullanan yönetici hesabı.
// Son kullanıcılardan (User) ayrıdır — operatörler platformu işleten kişilerdir.
type Operator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // json:"-" → API response'a DAHİL ETME
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest, operatör login isteği.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, login isteğinin geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// TokenClaims, operatör JWT token'ının payload'ı.
// models paketinde tanımlıdır çünkü services, middleware ve handlers
// tarafından kullanılır — her katman models'e bağımlı olabilir,
// circular dependency oluşmaz.
type TokenClaims struct {
	OperatorID string `json:"operator_id"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}
