package repository

import (
	"context"

	"github.com/akinalp/filo/models"
)

// OperatorRepository, operators tablosu işlemleri için interface.
type OperatorRepository interface {
	Create(ctx context.Context, op *models.Operator) error
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}
