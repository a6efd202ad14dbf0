package model

import "time"

// Review 商品评价，一个买家对一个商品只允许一条
type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint64    `gorm:"not null;uniqueIndex:idx_product_buyer" json:"product_id"`
	BuyerID   uint64    `gorm:"not null;uniqueIndex:idx_product_buyer" json:"buyer_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID;references:ID" json:"-"`
	Buyer   User    `gorm:"foreignKey:BuyerID;references:ID" json:"-"`
}

func (Review) TableName() string { return "reviews" }
