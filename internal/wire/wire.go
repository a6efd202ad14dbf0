package wire

import (
	"FarmLink/internal/api"
	"FarmLink/internal/api/config"
	"FarmLink/internal/api/handler"
	"FarmLink/internal/job"
	"FarmLink/internal/pkg/cron"
	"FarmLink/internal/pkg/mongo"
	"FarmLink/internal/pkg/mpesa"
	"FarmLink/internal/repository"
	"FarmLink/internal/service"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	messageRepo := mongo.NewMessageRepo(mongoDB)

	mpesaClient := mpesa.NewClient(cfg.Mpesa)

	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, userRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo)
	reviewService := service.NewReviewService(reviewRepo, orderRepo, productRepo, userRepo)
	paymentService := service.NewPaymentService(mpesaClient)
	statsService := service.NewStatsService(userRepo, productRepo, orderRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, productRepo)
	notificationService := service.NewNotificationService(messageRepo, userRepo, productRepo)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService, statsService),
		ProductHandler:   handler.NewProductHandler(productService, reviewService),
		OrderHandler:     handler.NewOrderHandler(orderService),
		ReviewHandler:    handler.NewReviewHandler(reviewService),
		PaymentHandler:   handler.NewPaymentHandler(paymentService),
		MediaHandler:     handler.NewMediaHandler(),
		MessageHandler:   handler.NewMessageHandler(messageService, notificationService),
		SubscribeHandler: handler.NewSubscribeHandler(),
		WsHandler:        handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	calibrationJob := job.NewUnreadCalibrationJob(messageRepo, notificationService)
	cronMgr := cron.NewCronManager(calibrationJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
