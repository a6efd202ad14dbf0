package job

import (
	"FarmLink/internal/pkg/logger"
	"FarmLink/internal/pkg/mongo"
	"FarmLink/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// UnreadCalibrationJob 周期性重算存在未读消息用户的汇总缓存，
// 修正推送丢失或缓存写失败造成的计数漂移。
type UnreadCalibrationJob struct {
	messageRepo         mongo.MessageRepo
	notificationService service.NotificationService
}

func NewUnreadCalibrationJob(messageRepo mongo.MessageRepo, notificationService service.NotificationService) *UnreadCalibrationJob {
	return &UnreadCalibrationJob{
		messageRepo:         messageRepo,
		notificationService: notificationService,
	}
}

func (s *UnreadCalibrationJob) Run() {
	traceID := "job-unread-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	receiverIDs, err := s.messageRepo.DistinctUnreadReceivers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "scan unread receivers error", "err", err)
		return
	}

	log.InfoContext(ctx, "UnreadCalibrationJob processing", "receiver_count", len(receiverIDs))

	refreshed := 0
	for _, uid := range receiverIDs {
		if _, err = s.notificationService.RefreshUnreadSummary(ctx, uid); err != nil {
			log.ErrorContext(ctx, "refresh unread summary error", "uid", uid, "err", err)
			continue
		}
		refreshed++
	}

	log.InfoContext(ctx, "UnreadCalibrationJob finished", "refreshed_count", refreshed)
}
