package dto

// StkPushDTO 发起 M-Pesa STK 支付
type StkPushDTO struct {
	PhoneNumber string  `json:"phoneNumber" binding:"required"`
	Amount      float64 `json:"amount" binding:"required" validate:"gt=0"`
	OrderID     uint64  `json:"order_id"`
}

// StkPushResultDTO STK 推送结果
type StkPushResultDTO struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}
