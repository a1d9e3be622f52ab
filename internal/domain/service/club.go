package service

import (
	"context"

	"github.com/campuslink/club-governance/internal/domain/dto"
	"github.com/campuslink/club-governance/internal/domain/entity"
	"github.com/lib/pq"
)

type ClubStorage interface {
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	GetByName(ctx context.Context, name string) (*entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
	SetHead(ctx context.Context, id string, headID int64) error
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error)
}

// ClubService is the club registry. Clubs are soft-deactivated and never
// hard-deleted while membership history references them.
type ClubService struct {
	storage ClubStorage
}

func NewClubService(storage ClubStorage) *ClubService {
	return &ClubService{
		storage: storage,
	}
}

func (s *ClubService) Create(ctx context.Context, input dto.CreateClub, approved bool) (*entity.Club, error) {
	return s.storage.Create(ctx, &entity.Club{
		Name:         input.Name,
		Description:  input.Description,
		HeadID:       input.HeadID,
		AllowedRoles: pq.StringArray(input.AllowedRoles),
		Approved:     approved,
		Active:       true,
	})
}

func (s *ClubService) Get(ctx context.Context, id string) (*entity.Club, error) {
	return s.storage.Get(ctx, id)
}

func (s *ClubService) GetByName(ctx context.Context, name string) (*entity.Club, error) {
	return s.storage.GetByName(ctx, name)
}

func (s *ClubService) Approve(ctx context.Context, id string) (*entity.Club, error) {
	club, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	club.Approved = true
	return s.storage.Update(ctx, club)
}

func (s *ClubService) Deactivate(ctx context.Context, id string) (*entity.Club, error) {
	club, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	club.Active = false
	return s.storage.Update(ctx, club)
}

func (s *ClubService) Reactivate(ctx context.Context, id string) (*entity.Club, error) {
	club, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	club.Active = true
	return s.storage.Update(ctx, club)
}

func (s *ClubService) Update(ctx context.Context, id string, input dto.UpdateClub) (*entity.Club, error) {
	club, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Description != nil {
		club.Description = *input.Description
	}
	if input.AllowedRoles != nil {
		club.AllowedRoles = pq.StringArray(*input.AllowedRoles)
	}
	return s.storage.Update(ctx, club)
}

func (s *ClubService) SetHead(ctx context.Context, id string, headID int64) error {
	return s.storage.SetHead(ctx, id, headID)
}

func (s *ClubService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *ClubService) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error) {
	return s.storage.GetWithPagination(ctx, offset, limit, order)
}
