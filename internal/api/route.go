package api

import (
	"FarmLink/internal/api/middleware"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.Me)
			}

			// 需要登录 & 拥有 Admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.GET("/list", group.UserHandler.ListUsers)
				adminGroup.POST("/ban", group.UserHandler.BanUser)
				adminGroup.POST("/unban", group.UserHandler.UnBanUser)
				adminGroup.GET("/stats", group.UserHandler.PlatformStats)
			}
		}

		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", group.ProductHandler.ListProducts)
			productGroup.GET("/:id", group.ProductHandler.GetProduct)
			productGroup.GET("/:id/reviews", group.ProductHandler.GetProductReviews)

			farmerGroup := productGroup.Group("")
			farmerGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleFarmer))
			{
				farmerGroup.POST("", group.ProductHandler.CreateProduct)
				farmerGroup.PUT("/:id", group.ProductHandler.UpdateProduct)
				farmerGroup.DELETE("/:id", group.ProductHandler.DeleteProduct)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleFarmer, consts.RoleAdmin))
			{
				mediaGroup.POST("/upload", group.MediaHandler.Upload)
			}
		}

		orderGroup := apiGroup.Group("/orders")
		{
			orderGroup.Use(middleware.AuthMiddleware())
			{
				orderGroup.POST("", middleware.CheckRoles(consts.RoleBuyer), group.OrderHandler.CreateOrder)
				orderGroup.GET("/buyer", group.OrderHandler.ListBuyerOrders)
				orderGroup.GET("/farmer", middleware.CheckRoles(consts.RoleFarmer), group.OrderHandler.ListFarmerOrders)
				orderGroup.PUT("/:id/status", group.OrderHandler.UpdateOrderStatus)
			}
		}

		reviewGroup := apiGroup.Group("/reviews")
		{
			reviewGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleBuyer))
			{
				reviewGroup.POST("", group.ReviewHandler.CreateReview)
			}
		}

		paymentGroup := apiGroup.Group("/payments")
		{
			paymentGroup.Use(middleware.AuthMiddleware())
			{
				paymentGroup.POST("/stkpush", group.PaymentHandler.StkPush)
			}
		}

		messageGroup := apiGroup.Group("/messages")
		{
			authGroup := messageGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				// WS 与 SSE 的 token 走 query，由 AuthMiddleware 统一校验与注销黑名单比对
				authGroup.GET("/ws", group.WsHandler.Connect)
				authGroup.POST("", group.MessageHandler.SendMessage)
				authGroup.GET("/conversations", group.MessageHandler.GetConversationList)
				authGroup.GET("/notifications", group.MessageHandler.GetUnreadSummary)
				authGroup.PUT("/read", group.MessageHandler.MarkAsRead)
				authGroup.POST("/typing", group.MessageHandler.Typing)
				authGroup.GET("/subscribe/:peerId/:productId", group.SubscribeHandler.Subscribe)
				authGroup.GET("/:peerId/:productId", group.MessageHandler.GetMessages)
			}
		}
	}

	return r
}
