package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newReviewTestEnv(t *testing.T) (ReviewService, *gorm.DB, *model.User, *model.Product) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.Review{}))

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	buyer := &model.User{Name: "Alice", Role: consts.RoleBuyer}
	farmer := &model.User{Name: "Bob", Role: consts.RoleFarmer}
	require.NoError(t, db.Create(buyer).Error)
	require.NoError(t, db.Create(farmer).Error)

	product := &model.Product{FarmerID: farmer.ID, Name: "Tomatoes", Price: 100, Stock: 10}
	require.NoError(t, db.Create(product).Error)

	svc := NewReviewService(reviewRepo, orderRepo, productRepo, userRepo)
	return svc, db, buyer, product
}

func deliveredOrder(t *testing.T, db *gorm.DB, buyerID, productID uint64) {
	t.Helper()
	order := &model.Order{
		BuyerID:   buyerID,
		FarmerID:  1,
		ProductID: productID,
		Quantity:  1,
		Status:    consts.OrderStatusDelivered,
	}
	require.NoError(t, db.Create(order).Error)
}

func TestCreateReview(t *testing.T) {
	svc, db, buyer, product := newReviewTestEnv(t)
	ctx := context.Background()

	t.Run("rejected without delivered order", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, buyer.ID, &dto.CreateReviewDTO{
			ProductID: product.ID, Rating: 5, Comment: "great",
		})
		assert.ErrorIs(t, err, ErrReviewNotAllowed)
	})

	deliveredOrder(t, db, buyer.ID, product.ID)

	t.Run("rating out of range rejected", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, buyer.ID, &dto.CreateReviewDTO{
			ProductID: product.ID, Rating: 6,
		})
		assert.Error(t, err)
	})

	t.Run("allowed after delivery", func(t *testing.T) {
		res, err := svc.CreateReview(ctx, buyer.ID, &dto.CreateReviewDTO{
			ProductID: product.ID, Rating: 4, Comment: "very fresh",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Rating)
		assert.Equal(t, "Alice", res.BuyerName)
	})

	t.Run("second review for same product rejected", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, buyer.ID, &dto.CreateReviewDTO{
			ProductID: product.ID, Rating: 5,
		})
		assert.ErrorIs(t, err, ErrReviewExist)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, buyer.ID, &dto.CreateReviewDTO{
			ProductID: 9999, Rating: 5,
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestGetProductReviews(t *testing.T) {
	svc, db, buyer, product := newReviewTestEnv(t)
	ctx := context.Background()

	second := &model.User{Name: "Carol", Role: consts.RoleBuyer}
	require.NoError(t, db.Create(second).Error)

	deliveredOrder(t, db, buyer.ID, product.ID)
	deliveredOrder(t, db, second.ID, product.ID)

	_, err := svc.CreateReview(ctx, buyer.ID, &dto.CreateReviewDTO{ProductID: product.ID, Rating: 5, Comment: "top"})
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, second.ID, &dto.CreateReviewDTO{ProductID: product.ID, Rating: 3, Comment: "ok"})
	require.NoError(t, err)

	summary, err := svc.GetProductReviews(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ReviewCount)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.001)
	require.Len(t, summary.Reviews, 2)
}
