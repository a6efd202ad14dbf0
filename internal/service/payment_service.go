package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/mpesa"
	"FarmLink/internal/pkg/util"
	"context"
	"fmt"
	log "log/slog"
	"math"
)

type PaymentService interface {
	InitiateStkPush(ctx context.Context, userID uint64, pushDTO *dto.StkPushDTO) (*dto.StkPushResultDTO, error)
}

type PaymentServiceImpl struct {
	mpesaClient *mpesa.Client
}

func NewPaymentService(mpesaClient *mpesa.Client) PaymentService {
	return &PaymentServiceImpl{
		mpesaClient: mpesaClient,
	}
}

// InitiateStkPush 向买家手机发起 M-Pesa STK 支付请求
func (s *PaymentServiceImpl) InitiateStkPush(ctx context.Context, userID uint64, pushDTO *dto.StkPushDTO) (*dto.StkPushResultDTO, error) {
	if err := util.ValidateDTO(pushDTO); err != nil {
		return nil, ErrParamInvalid
	}

	reference := "FarmLink"
	if pushDTO.OrderID != 0 {
		reference = fmt.Sprintf("FarmLink-%d", pushDTO.OrderID)
	}
	// M-Pesa 金额按整数先令受理
	result, err := s.mpesaClient.InitiateStkPush(ctx, pushDTO.PhoneNumber, int64(math.Ceil(pushDTO.Amount)), reference)
	if err != nil {
		log.ErrorContext(ctx, "stk push failed", "user_id", userID, "err", err)
		return nil, ErrPaymentFailed
	}

	return &dto.StkPushResultDTO{
		MerchantRequestID:   result.MerchantRequestID,
		CheckoutRequestID:   result.CheckoutRequestID,
		ResponseCode:        result.ResponseCode,
		ResponseDescription: result.ResponseDescription,
		CustomerMessage:     result.CustomerMessage,
	}, nil
}
