package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/lib/utils"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
)

type UserService struct {
	*EntityService[model.User]
	cost int
}

// NewUserService builds the user service. cost is the bcrypt cost used
// for passwords.
func NewUserService(table *repository.Table[model.User], cost int) *UserService {
	return &UserService{
		EntityService: NewEntityService(table, "User"),
		cost:          cost,
	}
}

// Register creates a user from payload. A supplied password is stored
// as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, payload *model.CreateUserPayload) (*model.User, error) {
	user := payload.ToModel()

	if payload.Password != nil && *payload.Password != "" {
		hash, err := utils.HashPassword(*payload.Password, s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = &hash
	}

	if err := s.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
