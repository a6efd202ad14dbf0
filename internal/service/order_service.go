package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/util"
	"FarmLink/internal/repository"
	"context"

	"gorm.io/gorm"
)

// 订单状态流转表，只允许前向推进；取消仅限待处理阶段
var orderTransitions = map[string][]string{
	consts.OrderStatusPending:   {consts.OrderStatusConfirmed, consts.OrderStatusCancelled},
	consts.OrderStatusConfirmed: {consts.OrderStatusShipped},
	consts.OrderStatusShipped:   {consts.OrderStatusDelivered},
}

type OrderService interface {
	CreateOrder(ctx context.Context, buyerID uint64, createDTO *dto.CreateOrderDTO) (*dto.CreateOrderResultDTO, error)
	UpdateOrderStatus(ctx context.Context, userID uint64, roles []string, orderID uint64, status string) error
	ListBuyerOrders(ctx context.Context, buyerID uint64) ([]*dto.OrderDTO, error)
	ListFarmerOrders(ctx context.Context, farmerID uint64) ([]*dto.OrderDTO, error)
}

type OrderServiceImpl struct {
	orderRepo   repository.OrderRepo
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
}

func NewOrderService(orderRepo repository.OrderRepo, productRepo repository.ProductRepo, userRepo repository.UserRepo) OrderService {
	return &OrderServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// CreateOrder 下单：每个购物车条目生成一条订单，库存扣减与订单写入在同一事务
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, buyerID uint64, createDTO *dto.CreateOrderDTO) (*dto.CreateOrderResultDTO, error) {
	if err := util.ValidateDTO(createDTO); err != nil {
		return nil, ErrParamInvalid
	}
	if len(createDTO.Items) == 0 {
		return nil, ErrParamInvalid
	}

	productIDs := make([]uint64, 0, len(createDTO.Items))
	for _, item := range createDTO.Items {
		if item.Quantity <= 0 {
			return nil, ErrParamInvalid
		}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.GetProductByIds(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint64]*model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	billing := createDTO.BillingDetails
	orders := make([]*model.Order, 0, len(createDTO.Items))
	for _, item := range createDTO.Items {
		product, ok := productByID[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		if product.Stock < item.Quantity {
			return nil, ErrStockInsufficient
		}
		orders = append(orders, &model.Order{
			BuyerID:     buyerID,
			FarmerID:    product.FarmerID,
			ProductID:   product.ID,
			Quantity:    item.Quantity,
			Status:      consts.OrderStatusPending,
			FullName:    billing.FullName,
			Location:    billing.Location,
			TownCity:    billing.TownCity,
			PhoneNumber: billing.PhoneNumber,
			Email:       billing.Email,
			OrderAmount: product.Price * float64(item.Quantity),
		})
	}

	items := createDTO.Items
	err = s.orderRepo.CreateOrders(ctx, orders, func(tx *gorm.DB) error {
		for _, item := range items {
			affected, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	orderIDs := make([]uint64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	return &dto.CreateOrderResultDTO{
		OrderIDs: orderIDs,
		Message:  "订单创建成功",
	}, nil
}

// UpdateOrderStatus 状态流转。农户确认与发货，买家在待处理时取消、发货后确认收货。
func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, userID uint64, roles []string, orderID uint64, status string) error {
	order, err := s.orderRepo.GetOrderById(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	isAdmin := hasRole(roles, consts.RoleAdmin)
	switch {
	case isAdmin:
	case order.BuyerID == userID:
		if status != consts.OrderStatusCancelled && status != consts.OrderStatusDelivered {
			return UnauthorizedError
		}
	case order.FarmerID == userID:
		if status != consts.OrderStatusConfirmed && status != consts.OrderStatusShipped {
			return UnauthorizedError
		}
	default:
		return UnauthorizedError
	}

	if !canTransition(order.Status, status) {
		return ErrOrderStatusInvalid
	}

	affected, err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderServiceImpl) ListBuyerOrders(ctx context.Context, buyerID uint64) ([]*dto.OrderDTO, error) {
	orders, err := s.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return s.toOrderDTOs(ctx, orders), nil
}

func (s *OrderServiceImpl) ListFarmerOrders(ctx context.Context, farmerID uint64) ([]*dto.OrderDTO, error) {
	orders, err := s.orderRepo.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return s.toOrderDTOs(ctx, orders), nil
}

func canTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *OrderServiceImpl) toOrderDTOs(ctx context.Context, orders []*model.Order) []*dto.OrderDTO {
	userIDs := make([]uint64, 0, len(orders)*2)
	for _, o := range orders {
		userIDs = append(userIDs, o.BuyerID, o.FarmerID)
	}
	names := lookupUserNames(ctx, s.userRepo, userIDs)

	res := make([]*dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		res = append(res, &dto.OrderDTO{
			ID:         o.ID,
			BuyerID:    o.BuyerID,
			FarmerID:   o.FarmerID,
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			Status:     o.Status,
			BuyerName:  names[o.BuyerID],
			FarmerName: names[o.FarmerID],
			Product: dto.OrderProductDTO{
				Name:     o.Product.Name,
				Price:    o.Product.Price,
				Category: o.Product.Category,
				FarmerID: o.Product.FarmerID,
			},
			BillingDetails: dto.BillingDetailsDTO{
				FullName:    o.FullName,
				Location:    o.Location,
				TownCity:    o.TownCity,
				PhoneNumber: o.PhoneNumber,
				Email:       o.Email,
				OrderAmount: o.OrderAmount,
			},
			CreatedAt: o.CreatedAt,
		})
	}
	return res
}
