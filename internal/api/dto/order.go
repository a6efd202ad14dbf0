package dto

import "time"

// BillingDetailsDTO 账单信息
type BillingDetailsDTO struct {
	FullName    string  `json:"fullName" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	TownCity    string  `json:"townCity" binding:"required"`
	PhoneNumber string  `json:"phoneNumber" binding:"required" validate:"startswith=+254,len=13"`
	Email       string  `json:"email" binding:"required" validate:"email"`
	OrderAmount float64 `json:"order_amount"`
}

// CartItemDTO 购物车条目
type CartItemDTO struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required" validate:"gt=0"`
}

// CreateOrderDTO 下单请求：购物车条目 + 账单信息
type CreateOrderDTO struct {
	Items          []CartItemDTO     `json:"items" binding:"required"`
	BillingDetails BillingDetailsDTO `json:"billingDetails" binding:"required"`
}

// CreateOrderResultDTO 下单结果
type CreateOrderResultDTO struct {
	OrderIDs []uint64 `json:"orderIds"`
	Message  string   `json:"message"`
}

// UpdateOrderDTO 订单状态变更
type UpdateOrderDTO struct {
	Status string `json:"status" binding:"required"`
}

// OrderProductDTO 订单内嵌商品摘要
type OrderProductDTO struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	FarmerID uint64  `json:"farmer_id"`
}

// OrderDTO 订单
type OrderDTO struct {
	ID             uint64            `json:"id"`
	BuyerID        uint64            `json:"buyer_id"`
	FarmerID       uint64            `json:"farmer_id"`
	ProductID      uint64            `json:"product_id"`
	Quantity       int               `json:"quantity"`
	Status         string            `json:"status"`
	Product        OrderProductDTO   `json:"product"`
	BuyerName      string            `json:"buyer_name"`
	FarmerName     string            `json:"farmer_name"`
	BillingDetails BillingDetailsDTO `json:"billing_details"`
	CreatedAt      time.Time         `json:"created_at"`
}
