package repository

import (
	"FarmLink/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ReviewRepo interface {
	GetReviewByBuyerAndProduct(ctx context.Context, buyerID, productID uint64) (*model.Review, error)
	ListByProduct(ctx context.Context, productID uint64) ([]*model.Review, error)
	AverageRating(ctx context.Context, productID uint64) (float64, int64, error)
	CreateReview(ctx context.Context, review *model.Review) error
	DeleteReview(ctx context.Context, id uint64) error
}

type ReviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &ReviewRepoImpl{db: db}
}

func (s *ReviewRepoImpl) GetReviewByBuyerAndProduct(ctx context.Context, buyerID, productID uint64) (*model.Review, error) {
	review := &model.Review{}
	result := s.db.WithContext(ctx).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		First(review)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return review, nil
}

func (s *ReviewRepoImpl) ListByProduct(ctx context.Context, productID uint64) ([]*model.Review, error) {
	reviews := make([]*model.Review, 0)
	result := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return reviews, nil
}

func (s *ReviewRepoImpl) AverageRating(ctx context.Context, productID uint64) (float64, int64, error) {
	type aggRow struct {
		Avg   float64
		Count int64
	}
	row := &aggRow{}
	result := s.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(row)
	if result.Error != nil {
		return 0, 0, result.Error
	}
	return row.Avg, row.Count, nil
}

func (s *ReviewRepoImpl) CreateReview(ctx context.Context, review *model.Review) error {
	return s.db.WithContext(ctx).Create(review).Error
}

func (s *ReviewRepoImpl) DeleteReview(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}
