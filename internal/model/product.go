package model

import (
	"time"
)

type Product struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	FarmerID    uint64    `gorm:"not null;index:idx_farmer_id" json:"farmer_id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(60);index:idx_category" json:"category"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	ImageURL    string    `gorm:"type:varchar(512)" json:"image_url"`
	IsDeleted   bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Farmer User `gorm:"foreignKey:FarmerID;references:ID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
