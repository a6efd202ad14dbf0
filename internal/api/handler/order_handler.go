package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder 买家下单
func (s *OrderHandler) CreateOrder(c *gin.Context) {
	var createDTO dto.CreateOrderDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	buyerID := c.GetUint64("user_id")

	res, err := s.orderService.CreateOrder(c, buyerID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// UpdateOrderStatus 订单状态流转
func (s *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var updateDTO dto.UpdateOrderDTO
	if err = c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	roles := c.GetStringSlice("roles")

	if err = s.orderService.UpdateOrderStatus(c, userID, roles, orderID, updateDTO.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListBuyerOrders 买家订单列表
func (s *OrderHandler) ListBuyerOrders(c *gin.Context) {
	buyerID := c.GetUint64("user_id")
	res, err := s.orderService.ListBuyerOrders(c, buyerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// ListFarmerOrders 农户侧订单列表
func (s *OrderHandler) ListFarmerOrders(c *gin.Context) {
	farmerID := c.GetUint64("user_id")
	res, err := s.orderService.ListFarmerOrders(c, farmerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
