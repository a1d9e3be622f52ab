package postgres

import (
	"context"
	"errors"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/entity"
	"gorm.io/gorm"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

func (s *ClubStorage) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Create(&club).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errorz.ErrClubNameTaken
	}
	return club, err
}

func (s *ClubStorage) Get(ctx context.Context, id string) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return &club, err
}

func (s *ClubStorage) GetByName(ctx context.Context, name string) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return &club, err
}

func (s *ClubStorage) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Save(&club).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errorz.ErrClubNameTaken
	}
	return club, err
}

func (s *ClubStorage) SetHead(ctx context.Context, id string, headID int64) error {
	res := s.db.WithContext(ctx).
		Model(&entity.Club{}).
		Where("id = ?", id).
		Update("head_id", headID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.ErrNotFound
	}
	return nil
}

func (s *ClubStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Club{}).Count(&count).Error
	return count, err
}

func (s *ClubStorage) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Order(order).Offset(offset).Limit(limit).Find(&clubs).Error
	return clubs, err
}
