package repository

import (
	"FarmLink/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type OrderRepo interface {
	GetOrderById(ctx context.Context, id uint64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]*model.Order, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]*model.Order, error)
	CreateOrders(ctx context.Context, orders []*model.Order, decrement func(tx *gorm.DB) error) error
	UpdateOrderStatus(ctx context.Context, id uint64, status string) (int64, error)
	HasDeliveredOrder(ctx context.Context, buyerID, productID uint64) (bool, error)
	CountOrders(ctx context.Context) (int64, error)
}

type OrderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepo {
	return &OrderRepoImpl{db: db}
}

func (s *OrderRepoImpl) GetOrderById(ctx context.Context, id uint64) (*model.Order, error) {
	order := &model.Order{}
	result := s.db.WithContext(ctx).
		Preload("Product").
		First(order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return order, nil
}

func (s *OrderRepoImpl) ListByBuyer(ctx context.Context, buyerID uint64) ([]*model.Order, error) {
	orders := make([]*model.Order, 0)
	result := s.db.WithContext(ctx).
		Preload("Product").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (s *OrderRepoImpl) ListByFarmer(ctx context.Context, farmerID uint64) ([]*model.Order, error) {
	orders := make([]*model.Order, 0)
	result := s.db.WithContext(ctx).
		Preload("Product").
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

// CreateOrders 在同一事务内写入订单并执行库存扣减
func (s *OrderRepoImpl) CreateOrders(ctx context.Context, orders []*model.Order, decrement func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if decrement != nil {
			if err := decrement(tx); err != nil {
				return err
			}
		}
		return tx.Create(&orders).Error
	})
}

func (s *OrderRepoImpl) UpdateOrderStatus(ctx context.Context, id uint64, status string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (s *OrderRepoImpl) HasDeliveredOrder(ctx context.Context, buyerID, productID uint64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("buyer_id = ? AND product_id = ? AND status = ?", buyerID, productID, "Delivered").
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (s *OrderRepoImpl) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Count(&count)
	return count, result.Error
}
