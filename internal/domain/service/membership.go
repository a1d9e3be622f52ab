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

type MembershipStorage interface {
	Create(ctx context.Context, episode *entity.MembershipEpisode) (*entity.MembershipEpisode, error)
	GetCurrent(ctx context.Context, clubID string, userID int64) (*entity.MembershipEpisode, error)
	CloseCurrent(ctx context.Context, clubID string, userID int64, leftAt time.Time) error
	GetActiveByClubID(ctx context.Context, clubID string) ([]dto.ClubMember, error)
	GetHistoryByClubID(ctx context.Context, clubID string) ([]entity.MembershipEpisode, error)
	GetByUserID(ctx context.Context, userID int64) ([]entity.MembershipEpisode, error)
	CountActiveByClubID(ctx context.Context, clubID string) (int64, error)
}

type membersCache interface {
	Get(ctx context.Context, clubID string, userID int64) (bool, error)
	Set(ctx context.Context, clubID string, userID int64, active bool, expiration time.Duration)
	Clear(ctx context.Context, clubID string, userID int64)
}

// MembershipService is the membership ledger: the factual record of who
// belongs to which club, kept as append-only join/leave episodes.
type MembershipService struct {
	logger *types.Logger

	storage  MembershipStorage
	cache    membersCache
	cacheTTL time.Duration
}

func NewMembershipService(logger *types.Logger, storage MembershipStorage, cache membersCache, cacheTTL time.Duration) *MembershipService {
	return &MembershipService{
		logger: logger,

		storage:  storage,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Join opens a new membership episode. Rejoining after a leave starts a
// fresh episode; the closed one stays in history untouched.
func (s *MembershipService) Join(ctx context.Context, clubID string, userID int64) (*entity.MembershipEpisode, error) {
	_, err := s.storage.GetCurrent(ctx, clubID, userID)
	if err == nil {
		return nil, errorz.ErrAlreadyMember
	}
	if !errors.Is(err, errorz.ErrNotAMember) {
		return nil, fmt.Errorf("failed to look up current episode: %w", err)
	}

	episode, err := s.storage.Create(ctx, &entity.MembershipEpisode{
		ID:       uuid.NewString(),
		ClubID:   clubID,
		UserID:   userID,
		JoinedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, clubID, userID, true, s.cacheTTL)
	}
	s.logger.Infof("user %d joined club %s", userID, clubID)
	return episode, nil
}

// Leave closes the open episode of the pair.
func (s *MembershipService) Leave(ctx context.Context, clubID string, userID int64) error {
	if err := s.storage.CloseCurrent(ctx, clubID, userID, time.Now()); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Clear(ctx, clubID, userID)
	}
	s.logger.Infof("user %d left club %s", userID, clubID)
	return nil
}

// IsActiveMember is a pure query; it reads through the cache when one is
// configured and falls back to the ledger on any cache failure.
func (s *MembershipService) IsActiveMember(ctx context.Context, clubID string, userID int64) (bool, error) {
	if s.cache != nil {
		active, err := s.cache.Get(ctx, clubID, userID)
		if err == nil {
			return active, nil
		}
		s.logger.Debugf("members cache miss for club %s user %d", clubID, userID)
	}

	_, err := s.storage.GetCurrent(ctx, clubID, userID)
	if errors.Is(err, errorz.ErrNotAMember) {
		if s.cache != nil {
			s.cache.Set(ctx, clubID, userID, false, s.cacheTTL)
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, clubID, userID, true, s.cacheTTL)
	}
	return true, nil
}

// GetCurrent returns the open episode of the pair.
func (s *MembershipService) GetCurrent(ctx context.Context, clubID string, userID int64) (*entity.MembershipEpisode, error) {
	return s.storage.GetCurrent(ctx, clubID, userID)
}

func (s *MembershipService) GetActiveMembers(ctx context.Context, clubID string) ([]dto.ClubMember, error) {
	return s.storage.GetActiveByClubID(ctx, clubID)
}

func (s *MembershipService) GetHistory(ctx context.Context, clubID string) ([]entity.MembershipEpisode, error) {
	return s.storage.GetHistoryByClubID(ctx, clubID)
}

func (s *MembershipService) GetUserMemberships(ctx context.Context, userID int64) ([]entity.MembershipEpisode, error) {
	return s.storage.GetByUserID(ctx, userID)
}

func (s *MembershipService) CountActiveMembers(ctx context.Context, clubID string) (int64, error) {
	return s.storage.CountActiveByClubID(ctx, clubID)
}

// DropCached evicts the pair from the cache. Callers that write episodes
// outside this service (the request approval transaction) use it to keep
// the cache honest.
func (s *MembershipService) DropCached(ctx context.Context, clubID string, userID int64) {
	if s.cache != nil {
		s.cache.Clear(ctx, clubID, userID)
	}
}
