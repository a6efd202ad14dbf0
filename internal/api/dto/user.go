package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Name     string `json:"name" binding:"required" validate:"min=1,max=50"`
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required" validate:"min=6,max=72"`
	Role     string `json:"role" binding:"required" validate:"oneof=Buyer Farmer"`
	Location string `json:"location"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户
type UserDTO struct {
	UserID    uint64    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BanUserDTO 封禁用户
type BanUserDTO struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// PlatformStatsDTO 平台概览统计
type PlatformStatsDTO struct {
	BuyerCount   int64 `json:"buyer_count"`
	FarmerCount  int64 `json:"farmer_count"`
	ProductCount int64 `json:"product_count"`
	OrderCount   int64 `json:"order_count"`
	MessageCount int64 `json:"message_count"`
}
