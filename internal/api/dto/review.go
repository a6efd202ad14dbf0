package dto

import "time"

// CreateReviewDTO 提交评价
type CreateReviewDTO struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required" validate:"gte=1,lte=5"`
	Comment   string `json:"comment"`
}

// ReviewDTO 评价
type ReviewDTO struct {
	ID          uint64    `json:"id"`
	ProductID   uint64    `json:"product_id"`
	BuyerID     uint64    `json:"buyer_id"`
	BuyerName   string    `json:"buyer_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	ProductName string    `json:"product_name,omitempty"`
}

// ReviewSummaryDTO 商品评价汇总
type ReviewSummaryDTO struct {
	ProductID     uint64      `json:"product_id"`
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int64       `json:"review_count"`
	Reviews       []*ReviewDTO `json:"reviews"`
}
