package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(100);not null"`
	Email     *string `gorm:"type:varchar(120);uniqueIndex:idx_email"`
	Password  *string `gorm:"type:varchar(255)"`
	Role      string  `gorm:"type:varchar(20);not null;index:idx_role"` // Buyer / Farmer / Admin
	Phone     *string `gorm:"type:varchar(30)"`
	Location  *string `gorm:"type:varchar(120)"`
	IsBan     bool    `gorm:"type:tinyint(1);default:0"`
	IsDelete  bool    `gorm:"type:tinyint(1);default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
