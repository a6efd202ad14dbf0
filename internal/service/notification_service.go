package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/mongo"
	"FarmLink/internal/pkg/redis"
	"FarmLink/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const unreadSummaryTTL = 30 * time.Second

// NotificationService 未读通知汇总服务接口定义
type NotificationService interface {
	GetUnreadSummary(ctx context.Context, userID uint64) (*dto.UnreadSummaryDTO, error)
	RefreshUnreadSummary(ctx context.Context, userID uint64) (*dto.UnreadSummaryDTO, error)
}

type notificationServiceImpl struct {
	messageRepo mongo.MessageRepo
	userRepo    repository.UserRepo
	productRepo repository.ProductRepo
}

func NewNotificationService(messageRepo mongo.MessageRepo, userRepo repository.UserRepo, productRepo repository.ProductRepo) NotificationService {
	return &notificationServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// GetUnreadSummary 读取未读汇总，优先命中 Redis 缓存。
// 缓存读写失败只记日志，始终能回落到 MongoDB 重算。
func (s *notificationServiceImpl) GetUnreadSummary(ctx context.Context, userID uint64) (*dto.UnreadSummaryDTO, error) {
	key := unreadSummaryCacheKey(userID)
	cached, err := redis.GetValue(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "read unread summary cache failed", "user_id", userID, "err", err)
	} else if cached != "" {
		summary := &dto.UnreadSummaryDTO{}
		if err = json.Unmarshal([]byte(cached), summary); err == nil {
			return summary, nil
		}
		log.WarnContext(ctx, "unread summary cache corrupted", "user_id", userID, "err", err)
	}

	return s.RefreshUnreadSummary(ctx, userID)
}

// RefreshUnreadSummary 绕过缓存从消息库重算并回写，校准任务复用该入口
func (s *notificationServiceImpl) RefreshUnreadSummary(ctx context.Context, userID uint64) (*dto.UnreadSummaryDTO, error) {
	unread, err := s.messageRepo.ListUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := BuildUnreadSummary(unread)
	s.fillNames(ctx, summary)

	if data, err := json.Marshal(summary); err == nil {
		if err = redis.SetWithExpiration(ctx, unreadSummaryCacheKey(userID), string(data), unreadSummaryTTL); err != nil {
			log.WarnContext(ctx, "write unread summary cache failed", "user_id", userID, "err", err)
		}
	}
	return summary, nil
}

func (s *notificationServiceImpl) fillNames(ctx context.Context, summary *dto.UnreadSummaryDTO) {
	if len(summary.Notifications) == 0 {
		return
	}
	senderIDs := make([]uint64, 0, len(summary.Notifications))
	productIDs := make([]uint64, 0, len(summary.Notifications))
	for _, n := range summary.Notifications {
		senderIDs = append(senderIDs, n.SenderID)
		productIDs = append(productIDs, n.ProductID)
	}
	userNames := lookupUserNames(ctx, s.userRepo, senderIDs)
	productNames := lookupProductNames(ctx, s.productRepo, productIDs)
	for _, n := range summary.Notifications {
		n.SenderName = userNames[n.SenderID]
		n.ProductName = productNames[n.ProductID]
	}
}

func unreadSummaryCacheKey(userID uint64) string {
	return consts.UnreadSummaryKey + strconv.FormatUint(userID, 10)
}
