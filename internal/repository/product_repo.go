package repository

import (
	"FarmLink/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ProductQuery 商品列表筛选条件
type ProductQuery struct {
	Category string
	Keyword  string
	FarmerID uint64
	MinPrice float64
	MaxPrice float64
	Page     int
	PageSize int
}

type ProductRepo interface {
	GetProductById(ctx context.Context, id uint64) (*model.Product, error)
	GetProductByIds(ctx context.Context, ids []uint64) ([]*model.Product, error)
	ListProducts(ctx context.Context, query *ProductQuery) ([]*model.Product, int64, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DecrementStock(ctx context.Context, tx *gorm.DB, id uint64, quantity int) (int64, error)
	DeleteProduct(ctx context.Context, id uint64) error
	CountProducts(ctx context.Context) (int64, error)
}

type ProductRepoImpl struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepo {
	return &ProductRepoImpl{db: db}
}

func (s *ProductRepoImpl) GetProductById(ctx context.Context, id uint64) (*model.Product, error) {
	product := &model.Product{}
	result := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return product, nil
}

func (s *ProductRepoImpl) GetProductByIds(ctx context.Context, ids []uint64) ([]*model.Product, error) {
	products := make([]*model.Product, 0)
	result := s.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

func (s *ProductRepoImpl) ListProducts(ctx context.Context, query *ProductQuery) ([]*model.Product, int64, error) {
	db := s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("is_deleted = ?", false)
	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}
	if query.Keyword != "" {
		db = db.Where("name LIKE ?", "%"+query.Keyword+"%")
	}
	if query.FarmerID != 0 {
		db = db.Where("farmer_id = ?", query.FarmerID)
	}
	if query.MinPrice > 0 {
		db = db.Where("price >= ?", query.MinPrice)
	}
	if query.MaxPrice > 0 {
		db = db.Where("price <= ?", query.MaxPrice)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.Page > 0 && query.PageSize > 0 {
		db = db.Offset((query.Page - 1) * query.PageSize).Limit(query.PageSize)
	}

	products := make([]*model.Product, 0)
	if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *ProductRepoImpl) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepoImpl) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Model(product).Updates(product).Error
}

// DecrementStock 条件扣减库存，库存不足时影响行数为 0
func (s *ProductRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, id uint64, quantity int) (int64, error) {
	db := s.db
	if tx != nil {
		db = tx
	}
	result := db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	return result.RowsAffected, result.Error
}

func (s *ProductRepoImpl) DeleteProduct(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (s *ProductRepoImpl) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("is_deleted = ?", false).
		Count(&count)
	return count, result.Error
}
