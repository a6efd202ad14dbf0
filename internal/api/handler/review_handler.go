package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview 买家提交评价
func (s *ReviewHandler) CreateReview(c *gin.Context) {
	var createDTO dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	buyerID := c.GetUint64("user_id")

	res, err := s.reviewService.CreateReview(c, buyerID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
