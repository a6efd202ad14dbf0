package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/util"
	"FarmLink/internal/repository"
	"context"
)

type ReviewService interface {
	CreateReview(ctx context.Context, buyerID uint64, createDTO *dto.CreateReviewDTO) (*dto.ReviewDTO, error)
	GetProductReviews(ctx context.Context, productID uint64) (*dto.ReviewSummaryDTO, error)
}

type ReviewServiceImpl struct {
	reviewRepo  repository.ReviewRepo
	orderRepo   repository.OrderRepo
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
}

func NewReviewService(reviewRepo repository.ReviewRepo, orderRepo repository.OrderRepo, productRepo repository.ProductRepo, userRepo repository.UserRepo) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// CreateReview 提交评价。仅限已收货的买家，且每个商品一人一条。
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, buyerID uint64, createDTO *dto.CreateReviewDTO) (*dto.ReviewDTO, error) {
	if err := util.ValidateDTO(createDTO); err != nil {
		return nil, ErrParamInvalid
	}
	if createDTO.Rating < 1 || createDTO.Rating > 5 {
		return nil, ErrRatingInvalid
	}

	product, err := s.productRepo.GetProductById(ctx, createDTO.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	delivered, err := s.orderRepo.HasDeliveredOrder(ctx, buyerID, createDTO.ProductID)
	if err != nil {
		return nil, err
	}
	if !delivered {
		return nil, ErrReviewNotAllowed
	}

	existing, err := s.reviewRepo.GetReviewByBuyerAndProduct(ctx, buyerID, createDTO.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExist
	}

	review := &model.Review{
		ProductID: createDTO.ProductID,
		BuyerID:   buyerID,
		Rating:    createDTO.Rating,
		Comment:   createDTO.Comment,
	}
	if err = s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	names := lookupUserNames(ctx, s.userRepo, []uint64{buyerID})
	return &dto.ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		BuyerID:   review.BuyerID,
		BuyerName: names[buyerID],
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}, nil
}

// GetProductReviews 商品评价列表与均分
func (s *ReviewServiceImpl) GetProductReviews(ctx context.Context, productID uint64) (*dto.ReviewSummaryDTO, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	buyerIDs := make([]uint64, 0, len(reviews))
	for _, r := range reviews {
		buyerIDs = append(buyerIDs, r.BuyerID)
	}
	names := lookupUserNames(ctx, s.userRepo, buyerIDs)

	res := &dto.ReviewSummaryDTO{
		ProductID:     productID,
		AverageRating: avg,
		ReviewCount:   count,
		Reviews:       make([]*dto.ReviewDTO, 0, len(reviews)),
	}
	for _, r := range reviews {
		res.Reviews = append(res.Reviews, &dto.ReviewDTO{
			ID:        r.ID,
			ProductID: r.ProductID,
			BuyerID:   r.BuyerID,
			BuyerName: names[r.BuyerID],
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return res, nil
}
