package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRequestStorage struct {
	db *gorm.DB
}

func NewMembershipRequestStorage(db *gorm.DB) *MembershipRequestStorage {
	return &MembershipRequestStorage{
		db: db,
	}
}

// Create inserts a new pending request. The duplicate-pending lookup runs
// inside the same transaction as the insert so two concurrent requests for
// the same pair cannot both slip through.
func (s *MembershipRequestStorage) Create(ctx context.Context, request *entity.MembershipRequest) (*entity.MembershipRequest, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&entity.MembershipRequest{}).
			Where("club_id = ? AND user_id = ? AND status = ?", request.ClubID, request.UserID, entity.RequestStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return errorz.ErrDuplicateRequest
		}

		request.Status = entity.RequestStatusPending
		return tx.Create(&request).Error
	})

	return request, err
}

func (s *MembershipRequestStorage) Get(ctx context.Context, id uint) (*entity.MembershipRequest, error) {
	var request entity.MembershipRequest
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return &request, err
}

// Approve moves the request to its terminal approved state and opens the
// membership episode in one transaction. A conflicting open episode rolls
// the whole thing back, so an approved request without a membership row is
// never observable.
func (s *MembershipRequestStorage) Approve(ctx context.Context, id uint, processorID int64, response string, episodeID string, now time.Time) (*entity.MembershipRequest, error) {
	var request entity.MembershipRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.ErrNotFound
			}
			return err
		}
		if request.Status != entity.RequestStatusPending {
			return errorz.ErrInvalidTransition
		}

		episode := entity.MembershipEpisode{
			ID:       episodeID,
			ClubID:   request.ClubID,
			UserID:   request.UserID,
			JoinedAt: now,
		}
		if err := tx.Create(&episode).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errorz.ErrAlreadyMember
			}
			return err
		}

		request.Status = entity.RequestStatusApproved
		request.ResponseMessage = response
		request.ProcessedAt = &now
		request.ProcessedBy = &processorID
		return tx.Save(&request).Error
	})

	return &request, err
}

func (s *MembershipRequestStorage) Reject(ctx context.Context, id uint, processorID int64, response string, now time.Time) (*entity.MembershipRequest, error) {
	var request entity.MembershipRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.ErrNotFound
			}
			return err
		}
		if request.Status != entity.RequestStatusPending {
			return errorz.ErrInvalidTransition
		}

		request.Status = entity.RequestStatusRejected
		request.ResponseMessage = response
		request.ProcessedAt = &now
		request.ProcessedBy = &processorID
		return tx.Save(&request).Error
	})

	return &request, err
}

// DeletePending removes the request only while it is still pending;
// processed requests are immutable history.
func (s *MembershipRequestStorage) DeletePending(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, entity.RequestStatusPending).
		Delete(&entity.MembershipRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.ErrInvalidTransition
	}
	return nil
}

// GetPendingByClubID lists pending requests oldest first for FIFO review.
func (s *MembershipRequestStorage) GetPendingByClubID(ctx context.Context, clubID string) ([]entity.MembershipRequest, error) {
	var requests []entity.MembershipRequest
	err := s.db.WithContext(ctx).
		Where("club_id = ? AND status = ?", clubID, entity.RequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (s *MembershipRequestStorage) GetByClubID(ctx context.Context, clubID string) ([]entity.MembershipRequest, error) {
	var requests []entity.MembershipRequest
	err := s.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (s *MembershipRequestStorage) GetByUserID(ctx context.Context, userID int64) ([]entity.MembershipRequest, error) {
	var requests []entity.MembershipRequest
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (s *MembershipRequestStorage) GetPendingByUserID(ctx context.Context, userID int64) ([]entity.MembershipRequest, error) {
	var requests []entity.MembershipRequest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, entity.RequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}
