package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/dto"
	"github.com/campuslink/club-governance/internal/domain/entity"
	"github.com/campuslink/club-governance/pkg/logger/types"
	"github.com/google/uuid"
)

type ExecutiveStorage interface {
	Create(ctx context.Context, tenure *entity.ExecutiveTenure) (*entity.ExecutiveTenure, error)
	GetCurrent(ctx context.Context, clubID string, userID int64) (*entity.ExecutiveTenure, error)
	CloseCurrent(ctx context.Context, clubID string, userID int64, leftAt time.Time) error
	UpdatePosition(ctx context.Context, clubID string, userID int64, position string) error
	CountByPair(ctx context.Context, clubID string, userID int64) (int64, error)
	GetActiveByClubID(ctx context.Context, clubID string) ([]dto.ClubExecutive, error)
	GetHistoryByClubID(ctx context.Context, clubID string) ([]entity.ExecutiveTenure, error)
}

// ExecutiveService is the executive ledger. Whether an executive must
// also be a member is the governance layer's business, not this one's.
type ExecutiveService struct {
	logger *types.Logger

	storage ExecutiveStorage
}

func NewExecutiveService(logger *types.Logger, storage ExecutiveStorage) *ExecutiveService {
	return &ExecutiveService{
		logger: logger,

		storage: storage,
	}
}

// Promote opens a tenure with the given position.
func (s *ExecutiveService) Promote(ctx context.Context, clubID string, userID int64, position string) (*entity.ExecutiveTenure, error) {
	_, err := s.storage.GetCurrent(ctx, clubID, userID)
	if err == nil {
		return nil, errorz.ErrAlreadyExecutive
	}
	if !errors.Is(err, errorz.ErrNotAnExecutive) {
		return nil, fmt.Errorf("failed to look up current tenure: %w", err)
	}

	tenure, err := s.storage.Create(ctx, &entity.ExecutiveTenure{
		ID:       uuid.NewString(),
		ClubID:   clubID,
		UserID:   userID,
		Position: position,
		JoinedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("user %d promoted to %q in club %s", userID, position, clubID)
	return tenure, nil
}

// UpdatePosition relabels the open tenure.
func (s *ExecutiveService) UpdatePosition(ctx context.Context, clubID string, userID int64, position string) error {
	return s.storage.UpdatePosition(ctx, clubID, userID, position)
}

// Demote closes the open tenure; the position it was held under stays on
// the historical row.
func (s *ExecutiveService) Demote(ctx context.Context, clubID string, userID int64) error {
	if err := s.storage.CloseCurrent(ctx, clubID, userID, time.Now()); err != nil {
		return err
	}

	s.logger.Infof("user %d demoted in club %s", userID, clubID)
	return nil
}

// Reactivate opens a new tenure for a pair that has held one before. It
// is the explicit re-entry point for callers that already know the last
// tenure is closed; a pair with no history at all is rejected.
func (s *ExecutiveService) Reactivate(ctx context.Context, clubID string, userID int64, position string) (*entity.ExecutiveTenure, error) {
	_, err := s.storage.GetCurrent(ctx, clubID, userID)
	if err == nil {
		return nil, errorz.ErrAlreadyExecutive
	}
	if !errors.Is(err, errorz.ErrNotAnExecutive) {
		return nil, fmt.Errorf("failed to look up current tenure: %w", err)
	}

	prior, err := s.storage.CountByPair(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if prior == 0 {
		return nil, errorz.ErrNotAnExecutive
	}

	tenure, err := s.storage.Create(ctx, &entity.ExecutiveTenure{
		ID:       uuid.NewString(),
		ClubID:   clubID,
		UserID:   userID,
		Position: position,
		JoinedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("user %d reactivated as %q in club %s", userID, position, clubID)
	return tenure, nil
}

func (s *ExecutiveService) IsActiveExecutive(ctx context.Context, clubID string, userID int64) (bool, error) {
	_, err := s.storage.GetCurrent(ctx, clubID, userID)
	if errors.Is(err, errorz.ErrNotAnExecutive) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ExecutiveService) GetCurrent(ctx context.Context, clubID string, userID int64) (*entity.ExecutiveTenure, error) {
	return s.storage.GetCurrent(ctx, clubID, userID)
}

func (s *ExecutiveService) GetActiveExecutives(ctx context.Context, clubID string) ([]dto.ClubExecutive, error) {
	return s.storage.GetActiveByClubID(ctx, clubID)
}

func (s *ExecutiveService) GetHistory(ctx context.Context, clubID string) ([]entity.ExecutiveTenure, error) {
	return s.storage.GetHistoryByClubID(ctx, clubID)
}
