package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// Append adds a ledger entry; entries are never updated or deleted
func (r *RewardRepository) Append(ctx context.Context, entry *models.RewardPoint) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Balance sums every delta of the user's ledger. It may be negative.
func (r *RewardRepository) Balance(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.RewardPoint{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *RewardRepository) History(ctx context.Context, userID uint) ([]models.RewardPoint, error) {
	var entries []models.RewardPoint
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&entries).Error
	return entries, err
}
