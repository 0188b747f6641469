package repository

import (
	"context"

	"github.com/snowva/business-hub/internal/domain/entity"
)

// UserRepository is the persistence port for back-office users.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
