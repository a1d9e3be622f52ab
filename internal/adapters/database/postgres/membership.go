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

// stillActive is the sentinel the history ordering substitutes for an open
// episode's missing leave date. It never leaves this package.
const stillActive = "'infinity'::timestamptz"

type MembershipStorage struct {
	db *gorm.DB
}

func NewMembershipStorage(db *gorm.DB) *MembershipStorage {
	return &MembershipStorage{
		db: db,
	}
}

func (s *MembershipStorage) Create(ctx context.Context, episode *entity.MembershipEpisode) (*entity.MembershipEpisode, error) {
	err := s.db.WithContext(ctx).Create(&episode).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errorz.ErrAlreadyMember
	}
	return episode, err
}

func (s *MembershipStorage) GetCurrent(ctx context.Context, clubID string, userID int64) (*entity.MembershipEpisode, error) {
	var episode entity.MembershipEpisode
	err := s.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ? AND left_at IS NULL", clubID, userID).
		First(&episode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotAMember
	}
	return &episode, err
}

// CloseCurrent stamps the leave date on the open episode of the pair.
func (s *MembershipStorage) CloseCurrent(ctx context.Context, clubID string, userID int64, leftAt time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&entity.MembershipEpisode{}).
		Where("club_id = ? AND user_id = ? AND left_at IS NULL", clubID, userID).
		Update("left_at", leftAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.ErrNotAMember
	}
	return nil
}

func (s *MembershipStorage) GetActiveByClubID(ctx context.Context, clubID string) ([]dto.ClubMember, error) {
	var result []dto.ClubMember
	err := s.db.WithContext(ctx).
		Table("membership_episodes").
		Select("membership_episodes.club_id, membership_episodes.user_id, membership_episodes.joined_at, membership_episodes.left_at, users.fio, users.username, users.email, users.role, users.is_banned").
		Joins("LEFT JOIN users ON users.id = membership_episodes.user_id").
		Where("membership_episodes.club_id = ? AND membership_episodes.left_at IS NULL", clubID).
		Order("membership_episodes.joined_at ASC").
		Scan(&result).Error
	return result, err
}

func (s *MembershipStorage) GetHistoryByClubID(ctx context.Context, clubID string) ([]entity.MembershipEpisode, error) {
	var episodes []entity.MembershipEpisode
	err := s.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("COALESCE(left_at, " + stillActive + ") DESC, joined_at DESC").
		Find(&episodes).Error
	return episodes, err
}

func (s *MembershipStorage) GetByUserID(ctx context.Context, userID int64) ([]entity.MembershipEpisode, error) {
	var episodes []entity.MembershipEpisode
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("COALESCE(left_at, " + stillActive + ") DESC, joined_at DESC").
		Find(&episodes).Error
	return episodes, err
}

func (s *MembershipStorage) CountActiveByClubID(ctx context.Context, clubID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.MembershipEpisode{}).
		Where("club_id = ? AND left_at IS NULL", clubID).
		Count(&count).Error
	return count, err
}
