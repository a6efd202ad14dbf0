package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/util"
	"FarmLink/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	db       *gorm.DB
	svc      OrderService
	buyer    *model.User
	farmer   *model.User
	product  *model.Product
	product2 *model.Product
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.Review{}))

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	buyer := &model.User{Name: "Alice", Email: util.PtrString("alice@example.com"), Role: consts.RoleBuyer}
	farmer := &model.User{Name: "Bob", Email: util.PtrString("bob@example.com"), Role: consts.RoleFarmer}
	require.NoError(t, db.Create(buyer).Error)
	require.NoError(t, db.Create(farmer).Error)

	product := &model.Product{FarmerID: farmer.ID, Name: "Tomatoes", Category: "Vegetables", Price: 100, Stock: 10}
	product2 := &model.Product{FarmerID: farmer.ID, Name: "Mangoes", Category: "Fruits", Price: 50, Stock: 2}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(product2).Error)

	return &orderTestEnv{
		db:       db,
		svc:      NewOrderService(orderRepo, productRepo, userRepo),
		buyer:    buyer,
		farmer:   farmer,
		product:  product,
		product2: product2,
	}
}

func billing() dto.BillingDetailsDTO {
	return dto.BillingDetailsDTO{
		FullName:    "Alice Buyer",
		Location:    "Westlands",
		TownCity:    "Nairobi",
		PhoneNumber: "+254700000000",
		Email:       "alice@example.com",
	}
}

func TestCreateOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.CreateOrder(ctx, env.buyer.ID, &dto.CreateOrderDTO{
		Items: []dto.CartItemDTO{
			{ProductID: env.product.ID, Quantity: 3},
			{ProductID: env.product2.ID, Quantity: 1},
		},
		BillingDetails: billing(),
	})
	require.NoError(t, err)
	require.Len(t, res.OrderIDs, 2)

	// 库存已扣减
	var p model.Product
	require.NoError(t, env.db.First(&p, env.product.ID).Error)
	assert.Equal(t, 7, p.Stock)

	orders, err := env.svc.ListBuyerOrders(ctx, env.buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, consts.OrderStatusPending, o.Status)
		assert.Equal(t, env.farmer.ID, o.FarmerID)
		assert.Equal(t, "Bob", o.FarmerName)
		assert.Equal(t, "Nairobi", o.BillingDetails.TownCity)
	}

	byProduct := map[uint64]*dto.OrderDTO{}
	for _, o := range orders {
		byProduct[o.ProductID] = o
	}
	assert.Equal(t, float64(300), byProduct[env.product.ID].BillingDetails.OrderAmount)
	assert.Equal(t, float64(50), byProduct[env.product2.ID].BillingDetails.OrderAmount)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateOrder(ctx, env.buyer.ID, &dto.CreateOrderDTO{
		Items:          []dto.CartItemDTO{{ProductID: env.product2.ID, Quantity: 5}},
		BillingDetails: billing(),
	})
	assert.ErrorIs(t, err, ErrStockInsufficient)

	// 库存原样，订单未落库
	var p model.Product
	require.NoError(t, env.db.First(&p, env.product2.ID).Error)
	assert.Equal(t, 2, p.Stock)

	orders, err := env.svc.ListBuyerOrders(ctx, env.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.svc.CreateOrder(context.Background(), env.buyer.ID, &dto.CreateOrderDTO{
		Items:          []dto.CartItemDTO{{ProductID: 9999, Quantity: 1}},
		BillingDetails: billing(),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrderStatusTransitions(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.CreateOrder(ctx, env.buyer.ID, &dto.CreateOrderDTO{
		Items:          []dto.CartItemDTO{{ProductID: env.product.ID, Quantity: 1}},
		BillingDetails: billing(),
	})
	require.NoError(t, err)
	orderID := res.OrderIDs[0]
	farmerRoles := []string{consts.RoleFarmer}

	t.Run("farmer cannot skip confirmed", func(t *testing.T) {
		err := env.svc.UpdateOrderStatus(ctx, env.farmer.ID, farmerRoles, orderID, consts.OrderStatusShipped)
		assert.ErrorIs(t, err, ErrOrderStatusInvalid)
	})

	t.Run("full lifecycle", func(t *testing.T) {
		require.NoError(t, env.svc.UpdateOrderStatus(ctx, env.farmer.ID, farmerRoles, orderID, consts.OrderStatusConfirmed))
		require.NoError(t, env.svc.UpdateOrderStatus(ctx, env.farmer.ID, farmerRoles, orderID, consts.OrderStatusShipped))
		// 收货确认由买家完成
		require.NoError(t, env.svc.UpdateOrderStatus(ctx, env.buyer.ID, []string{consts.RoleBuyer}, orderID, consts.OrderStatusDelivered))
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		err := env.svc.UpdateOrderStatus(ctx, env.buyer.ID, []string{consts.RoleBuyer}, orderID, consts.OrderStatusCancelled)
		assert.ErrorIs(t, err, ErrOrderStatusInvalid)
	})
}

func TestOrderStatusPermissions(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.CreateOrder(ctx, env.buyer.ID, &dto.CreateOrderDTO{
		Items:          []dto.CartItemDTO{{ProductID: env.product.ID, Quantity: 1}},
		BillingDetails: billing(),
	})
	require.NoError(t, err)
	orderID := res.OrderIDs[0]

	t.Run("buyer cannot confirm", func(t *testing.T) {
		err := env.svc.UpdateOrderStatus(ctx, env.buyer.ID, []string{consts.RoleBuyer}, orderID, consts.OrderStatusConfirmed)
		assert.ErrorIs(t, err, UnauthorizedError)
	})

	t.Run("farmer cannot mark delivered", func(t *testing.T) {
		err := env.svc.UpdateOrderStatus(ctx, env.farmer.ID, []string{consts.RoleFarmer}, orderID, consts.OrderStatusDelivered)
		assert.ErrorIs(t, err, UnauthorizedError)
	})

	t.Run("stranger cannot touch the order", func(t *testing.T) {
		err := env.svc.UpdateOrderStatus(ctx, 9999, []string{consts.RoleFarmer}, orderID, consts.OrderStatusConfirmed)
		assert.ErrorIs(t, err, UnauthorizedError)
	})

	t.Run("buyer cancels pending order", func(t *testing.T) {
		require.NoError(t, env.svc.UpdateOrderStatus(ctx, env.buyer.ID, []string{consts.RoleBuyer}, orderID, consts.OrderStatusCancelled))
	})

	t.Run("cancel only while pending", func(t *testing.T) {
		res, err := env.svc.CreateOrder(ctx, env.buyer.ID, &dto.CreateOrderDTO{
			Items:          []dto.CartItemDTO{{ProductID: env.product2.ID, Quantity: 1}},
			BillingDetails: billing(),
		})
		require.NoError(t, err)
		id := res.OrderIDs[0]

		require.NoError(t, env.svc.UpdateOrderStatus(ctx, env.farmer.ID, []string{consts.RoleFarmer}, id, consts.OrderStatusConfirmed))
		err = env.svc.UpdateOrderStatus(ctx, env.buyer.ID, []string{consts.RoleBuyer}, id, consts.OrderStatusCancelled)
		assert.ErrorIs(t, err, ErrOrderStatusInvalid)
	})

	t.Run("unknown order", func(t *testing.T) {
		err := env.svc.UpdateOrderStatus(ctx, env.farmer.ID, []string{consts.RoleFarmer}, 9999, consts.OrderStatusConfirmed)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
