package model

import "time"

// Order 订单表，一个商品一条订单，同一次结算共享账单信息
type Order struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerID     uint64    `gorm:"not null;index:idx_buyer_id" json:"buyer_id"`
	FarmerID    uint64    `gorm:"not null;index:idx_orders_farmer_id" json:"farmer_id"`
	ProductID   uint64    `gorm:"not null;index" json:"product_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	FullName    string    `gorm:"type:varchar(120)" json:"full_name"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	TownCity    string    `gorm:"type:varchar(120)" json:"town_city"`
	PhoneNumber string    `gorm:"type:varchar(30)" json:"phone_number"`
	Email       string    `gorm:"type:varchar(120)" json:"email"`
	OrderAmount float64   `gorm:"not null;default:0" json:"order_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID;references:ID" json:"product"`
	Buyer   User    `gorm:"foreignKey:BuyerID;references:ID" json:"-"`
	Farmer  User    `gorm:"foreignKey:FarmerID;references:ID" json:"-"`
}

func (Order) TableName() string { return "orders" }
