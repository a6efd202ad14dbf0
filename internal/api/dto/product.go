package dto

import "time"

// CreateProductDTO 新建商品
type CreateProductDTO struct {
	Name        string  `json:"name" binding:"required" validate:"min=1,max=100"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required" validate:"gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

// UpdateProductDTO 更新商品，零值字段不更新
type UpdateProductDTO struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url"`
}

// ProductQueryDTO 商品列表过滤条件
type ProductQueryDTO struct {
	Category string  `form:"category"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Search   string  `form:"search"`
	FarmerID uint64  `form:"farmer_id"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// ProductDTO 商品
type ProductDTO struct {
	ID          uint64    `json:"id"`
	FarmerID    uint64    `json:"farmer_id"`
	FarmerName  string    `json:"farmer_name"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}
