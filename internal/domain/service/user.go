package service

import (
	"context"

	"github.com/campuslink/club-governance/internal/domain/entity"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.User, error)
}

// UserService mirrors the identity registry.
type UserService struct {
	storage UserStorage
}

func NewUserService(storage UserStorage) *UserService {
	return &UserService{
		storage: storage,
	}
}

func (s *UserService) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	if user.Role == "" {
		user.Role = entity.Student
	}
	return s.storage.Create(ctx, &user)
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]entity.User, error) {
	return s.storage.GetAll(ctx)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.storage.Update(ctx, user)
}

func (s *UserService) SetBanned(ctx context.Context, id int64, banned bool) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsBanned = banned
	return s.storage.Update(ctx, user)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *UserService) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.User, error) {
	return s.storage.GetWithPagination(ctx, offset, limit, order)
}
