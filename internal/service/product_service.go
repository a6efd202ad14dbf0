package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/minio"
	"FarmLink/internal/pkg/util"
	"FarmLink/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type ProductService interface {
	CreateProduct(ctx context.Context, farmerID uint64, createDTO *dto.CreateProductDTO) (*dto.ProductDTO, error)
	UpdateProduct(ctx context.Context, farmerID, productID uint64, updateDTO *dto.UpdateProductDTO) error
	DeleteProduct(ctx context.Context, farmerID, productID uint64) error
	GetProduct(ctx context.Context, productID uint64) (*dto.ProductDTO, error)
	ListProducts(ctx context.Context, queryDTO *dto.ProductQueryDTO) ([]*dto.ProductDTO, int64, error)
}

type ProductServiceImpl struct {
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
}

func NewProductService(productRepo repository.ProductRepo, userRepo repository.UserRepo) ProductService {
	return &ProductServiceImpl{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, farmerID uint64, createDTO *dto.CreateProductDTO) (*dto.ProductDTO, error) {
	if err := util.ValidateDTO(createDTO); err != nil {
		return nil, ErrParamInvalid
	}

	product := &model.Product{}
	if err := copier.Copy(product, createDTO); err != nil {
		return nil, err
	}
	product.FarmerID = farmerID

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return s.toProductDTO(ctx, product), nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, farmerID, productID uint64, updateDTO *dto.UpdateProductDTO) error {
	if err := util.ValidateDTO(updateDTO); err != nil {
		return ErrParamInvalid
	}

	product, err := s.ownedProduct(ctx, farmerID, productID)
	if err != nil {
		return err
	}

	if updateDTO.Name != nil {
		product.Name = *updateDTO.Name
	}
	if updateDTO.Category != nil {
		product.Category = *updateDTO.Category
	}
	if updateDTO.Description != nil {
		product.Description = *updateDTO.Description
	}
	if updateDTO.Price != nil {
		product.Price = *updateDTO.Price
	}
	if updateDTO.Stock != nil {
		product.Stock = *updateDTO.Stock
	}
	if updateDTO.ImageURL != nil {
		product.ImageURL = *updateDTO.ImageURL
	}

	return s.productRepo.UpdateProduct(ctx, product)
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, farmerID, productID uint64) error {
	if _, err := s.ownedProduct(ctx, farmerID, productID); err != nil {
		return err
	}
	return s.productRepo.DeleteProduct(ctx, productID)
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, productID uint64) (*dto.ProductDTO, error) {
	product, err := s.productRepo.GetProductById(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.toProductDTO(ctx, product), nil
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context, queryDTO *dto.ProductQueryDTO) ([]*dto.ProductDTO, int64, error) {
	query := &repository.ProductQuery{
		Category: queryDTO.Category,
		Keyword:  queryDTO.Search,
		FarmerID: queryDTO.FarmerID,
		MinPrice: queryDTO.MinPrice,
		MaxPrice: queryDTO.MaxPrice,
		Page:     queryDTO.Page,
		PageSize: queryDTO.PageSize,
	}
	products, total, err := s.productRepo.ListProducts(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	farmerIDs := make([]uint64, 0, len(products))
	for _, p := range products {
		farmerIDs = append(farmerIDs, p.FarmerID)
	}
	farmerNames := lookupUserNames(ctx, s.userRepo, farmerIDs)

	res := make([]*dto.ProductDTO, 0, len(products))
	for _, p := range products {
		d := s.toProductDTOBare(p)
		d.FarmerName = farmerNames[p.FarmerID]
		res = append(res, d)
	}
	return res, total, nil
}

// ownedProduct 校验商品存在且归属当前农户
func (s *ProductServiceImpl) ownedProduct(ctx context.Context, farmerID, productID uint64) (*model.Product, error) {
	product, err := s.productRepo.GetProductById(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.FarmerID != farmerID {
		return nil, ErrProductNotOwned
	}
	return product, nil
}

func (s *ProductServiceImpl) toProductDTOBare(product *model.Product) *dto.ProductDTO {
	return &dto.ProductDTO{
		ID:          product.ID,
		FarmerID:    product.FarmerID,
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURL:    minio.GetPublicURL(product.ImageURL),
		CreatedAt:   product.CreatedAt,
	}
}

func (s *ProductServiceImpl) toProductDTO(ctx context.Context, product *model.Product) *dto.ProductDTO {
	d := s.toProductDTOBare(product)
	names := lookupUserNames(ctx, s.userRepo, []uint64{product.FarmerID})
	d.FarmerName = names[product.FarmerID]
	return d
}
