package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// StkPush 发起 M-Pesa STK 支付
func (s *PaymentHandler) StkPush(c *gin.Context) {
	var pushDTO dto.StkPushDTO
	if err := c.ShouldBindJSON(&pushDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.paymentService.InitiateStkPush(c, userID, &pushDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
