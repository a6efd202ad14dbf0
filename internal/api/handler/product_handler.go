package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
	reviewService  service.ReviewService
}

func NewProductHandler(productService service.ProductService, reviewService service.ReviewService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
	}
}

// CreateProduct 农户新建商品
func (s *ProductHandler) CreateProduct(c *gin.Context) {
	var createDTO dto.CreateProductDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	farmerID := c.GetUint64("user_id")

	res, err := s.productService.CreateProduct(c, farmerID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// UpdateProduct 农户更新自己的商品
func (s *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var updateDTO dto.UpdateProductDTO
	if err = c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	farmerID := c.GetUint64("user_id")

	if err = s.productService.UpdateProduct(c, farmerID, productID, &updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteProduct 农户下架自己的商品
func (s *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	farmerID := c.GetUint64("user_id")

	if err = s.productService.DeleteProduct(c, farmerID, productID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetProduct 商品详情
func (s *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.productService.GetProduct(c, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// ListProducts 商品列表，支持分类、价格区间与关键词过滤
func (s *ProductHandler) ListProducts(c *gin.Context) {
	var queryDTO dto.ProductQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	products, total, err := s.productService.ListProducts(c, &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"products": products,
		"total":    total,
	})
}

// GetProductReviews 商品评价列表与均分
func (s *ProductHandler) GetProductReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.reviewService.GetProductReviews(c, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
