package service

import (
	"context"
	"time"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/entity"
	"github.com/campuslink/club-governance/pkg/logger/types"
	"github.com/google/uuid"
)

type MembershipRequestStorage interface {
	Create(ctx context.Context, request *entity.MembershipRequest) (*entity.MembershipRequest, error)
	Get(ctx context.Context, id uint) (*entity.MembershipRequest, error)
	Approve(ctx context.Context, id uint, processorID int64, response string, episodeID string, now time.Time) (*entity.MembershipRequest, error)
	Reject(ctx context.Context, id uint, processorID int64, response string, now time.Time) (*entity.MembershipRequest, error)
	DeletePending(ctx context.Context, id uint) error
	GetPendingByClubID(ctx context.Context, clubID string) ([]entity.MembershipRequest, error)
	GetByClubID(ctx context.Context, clubID string) ([]entity.MembershipRequest, error)
	GetByUserID(ctx context.Context, userID int64) ([]entity.MembershipRequest, error)
	GetPendingByUserID(ctx context.Context, userID int64) ([]entity.MembershipRequest, error)
}

// MembershipRequestService runs the approval workflow. A request moves
// pending -> approved|rejected exactly once; approval also opens the
// membership episode, and both writes land in the same transaction.
type MembershipRequestService struct {
	logger *types.Logger

	storage MembershipRequestStorage
}

func NewMembershipRequestService(logger *types.Logger, storage MembershipRequestStorage) *MembershipRequestService {
	return &MembershipRequestService{
		logger: logger,

		storage: storage,
	}
}

func (s *MembershipRequestService) Create(ctx context.Context, clubID string, userID int64, message string) (*entity.MembershipRequest, error) {
	request, err := s.storage.Create(ctx, &entity.MembershipRequest{
		ClubID:  clubID,
		UserID:  userID,
		Message: message,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("user %d requested to join club %s (request %d)", userID, clubID, request.ID)
	return request, nil
}

func (s *MembershipRequestService) Get(ctx context.Context, id uint) (*entity.MembershipRequest, error) {
	return s.storage.Get(ctx, id)
}

// Approve transitions the request and opens the membership episode. If
// the user somehow already holds an open episode the transaction rolls
// back and the request stays pending.
func (s *MembershipRequestService) Approve(ctx context.Context, id uint, processorID int64, response string) (*entity.MembershipRequest, error) {
	request, err := s.storage.Approve(ctx, id, processorID, response, uuid.NewString(), time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Infof("request %d approved by %d: user %d is now a member of club %s", id, processorID, request.UserID, request.ClubID)
	return request, nil
}

func (s *MembershipRequestService) Reject(ctx context.Context, id uint, processorID int64, response string) (*entity.MembershipRequest, error) {
	request, err := s.storage.Reject(ctx, id, processorID, response, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Infof("request %d rejected by %d", id, processorID)
	return request, nil
}

// Cancel removes a still-pending request. Ownership is checked before
// status, so a foreign caller gets ErrForbidden no matter what state the
// request is in.
func (s *MembershipRequestService) Cancel(ctx context.Context, id uint, userID int64) error {
	request, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if request.UserID != userID {
		return errorz.ErrForbidden
	}

	if err = s.storage.DeletePending(ctx, id); err != nil {
		return err
	}

	s.logger.Infof("request %d cancelled by its author %d", id, userID)
	return nil
}

func (s *MembershipRequestService) GetPendingByClubID(ctx context.Context, clubID string) ([]entity.MembershipRequest, error) {
	return s.storage.GetPendingByClubID(ctx, clubID)
}

func (s *MembershipRequestService) GetByClubID(ctx context.Context, clubID string) ([]entity.MembershipRequest, error) {
	return s.storage.GetByClubID(ctx, clubID)
}

func (s *MembershipRequestService) GetByUserID(ctx context.Context, userID int64) ([]entity.MembershipRequest, error) {
	return s.storage.GetByUserID(ctx, userID)
}

func (s *MembershipRequestService) GetPendingByUserID(ctx context.Context, userID int64) ([]entity.MembershipRequest, error) {
	return s.storage.GetPendingByUserID(ctx, userID)
}
