package api

import "FarmLink/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler      *handler.UserHandler
	ProductHandler   *handler.ProductHandler
	OrderHandler     *handler.OrderHandler
	ReviewHandler    *handler.ReviewHandler
	PaymentHandler   *handler.PaymentHandler
	MediaHandler     *handler.MediaHandler
	MessageHandler   *handler.MessageHandler
	SubscribeHandler *handler.SubscribeHandler
	WsHandler        *handler.WsHandler
}
