package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/dto"
	"github.com/campuslink/club-governance/internal/domain/entity"
	"gorm.io/gorm"
)

type ExecutiveStorage struct {
	db *gorm.DB
}

func NewExecutiveStorage(db *gorm.DB) *ExecutiveStorage {
	return &ExecutiveStorage{
		db: db,
	}
}

func (s *ExecutiveStorage) Create(ctx context.Context, tenure *entity.ExecutiveTenure) (*entity.ExecutiveTenure, error) {
	err := s.db.WithContext(ctx).Create(&tenure).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errorz.ErrAlreadyExecutive
	}
	return tenure, err
}

func (s *ExecutiveStorage) GetCurrent(ctx context.Context, clubID string, userID int64) (*entity.ExecutiveTenure, error) {
	var tenure entity.ExecutiveTenure
	err := s.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ? AND left_at IS NULL", clubID, userID).
		First(&tenure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotAnExecutive
	}
	return &tenure, err
}

func (s *ExecutiveStorage) CloseCurrent(ctx context.Context, clubID string, userID int64, leftAt time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&entity.ExecutiveTenure{}).
		Where("club_id = ? AND user_id = ? AND left_at IS NULL", clubID, userID).
		Update("left_at", leftAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.ErrNotAnExecutive
	}
	return nil
}

// UpdatePosition relabels the open tenure only; closed history keeps the
// position it was held under.
func (s *ExecutiveStorage) UpdatePosition(ctx context.Context, clubID string, userID int64, position string) error {
	res := s.db.WithContext(ctx).
		Model(&entity.ExecutiveTenure{}).
		Where("club_id = ? AND user_id = ? AND left_at IS NULL", clubID, userID).
		Update("position", position)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.ErrNotAnExecutive
	}
	return nil
}

func (s *ExecutiveStorage) CountByPair(ctx context.Context, clubID string, userID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.ExecutiveTenure{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&count).Error
	return count, err
}

func (s *ExecutiveStorage) GetActiveByClubID(ctx context.Context, clubID string) ([]dto.ClubExecutive, error) {
	var result []dto.ClubExecutive
	err := s.db.WithContext(ctx).
		Table("executive_tenures").
		Select("executive_tenures.club_id, executive_tenures.user_id, executive_tenures.position, executive_tenures.joined_at, executive_tenures.left_at, users.fio, users.username, users.email, users.role").
		Joins("LEFT JOIN users ON users.id = executive_tenures.user_id").
		Where("executive_tenures.club_id = ? AND executive_tenures.left_at IS NULL", clubID).
		Order("executive_tenures.joined_at ASC").
		Scan(&result).Error
	return result, err
}

func (s *ExecutiveStorage) GetHistoryByClubID(ctx context.Context, clubID string) ([]entity.ExecutiveTenure, error) {
	var tenures []entity.ExecutiveTenure
	err := s.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("joined_at ASC").
		Find(&tenures).Error
	return tenures, err
}
