package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/mongo"
	"FarmLink/internal/pkg/redis"
	"FarmLink/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// MessageService 买家与农户的私信服务接口定义
type MessageService interface {
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	GetMessages(ctx context.Context, userID, peerID, productID uint64) ([]*dto.MessageDTO, error)
	MarkMessagesRead(ctx context.Context, userID uint64, req *dto.MarkAsReadReq) (int64, error)
	GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error)
	BroadcastTyping(ctx context.Context, senderID uint64, req *dto.TypingReq) error
}

type messageServiceImpl struct {
	messageRepo mongo.MessageRepo
	userRepo    repository.UserRepo
	productRepo repository.ProductRepo
}

func NewMessageService(messageRepo mongo.MessageRepo, userRepo repository.UserRepo, productRepo repository.ProductRepo) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// SendMessage 发送私信。
// 发送者身份从数据库重新读取，不信任 token 里携带的角色快照。
func (s *messageServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	sender, err := s.userRepo.GetUserById(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}
	if sender.IsBan {
		return nil, ErrUserBan
	}
	if sender.Role != consts.RoleBuyer && sender.Role != consts.RoleFarmer {
		return nil, UnauthorizedError
	}

	if req.ReceiverID == senderID {
		return nil, ErrMessageSelf
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrMessageEmpty
	}

	receiver, err := s.userRepo.GetUserById(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrReceiverNotFound
	}

	product, err := s.productRepo.GetProductById(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	msg := &mongo.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		ProductID:  req.ProductID,
		Content:    content,
		Status:     consts.MessageStatusSent,
		CreatedAt:  time.Now(),
	}
	if err = s.messageRepo.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}

	res := s.toMessageDTO(msg)
	res.SenderName = sender.Name
	res.ReceiverName = receiver.Name

	// 推送给双方的用户频道，发送端多开页签也能即时看到自己的消息
	s.publishEvent(ctx, senderID, &dto.BusEvent{Type: dto.BusEventMessage, Message: res})
	s.publishEvent(ctx, req.ReceiverID, &dto.BusEvent{Type: dto.BusEventMessage, Message: res})
	s.invalidateUnreadCache(ctx, req.ReceiverID)

	return res, nil
}

// GetMessages 拉取与对方在某个商品下的往来记录，按时间正序。
// 返回后做一次尽力而为的投递扫描：把对方发来的 sent 批量迁移为 delivered。
func (s *messageServiceImpl) GetMessages(ctx context.Context, userID, peerID, productID uint64) ([]*dto.MessageDTO, error) {
	messages, err := s.messageRepo.ListBetween(ctx, userID, peerID, productID)
	if err != nil {
		return nil, err
	}

	res := s.toMessageDTOs(ctx, messages)

	modified, err := s.messageRepo.MarkDelivered(ctx, userID, peerID, productID)
	if err != nil {
		log.WarnContext(ctx, "delivered sweep failed", "user_id", userID, "peer_id", peerID, "err", err)
		return res, nil
	}
	if modified > 0 {
		s.publishEvent(ctx, peerID, &dto.BusEvent{
			Type: dto.BusEventReceipt,
			Receipt: &dto.ReceiptDTO{
				SenderID:   peerID,
				ReceiverID: userID,
				ProductID:  productID,
				Status:     consts.MessageStatusDelivered,
			},
		})
	}

	return res, nil
}

// MarkMessagesRead 把 (发送者, 当前用户, 商品) 范围内的未读消息标记为已读。
// 已经是 read 的行不受影响，重复调用幂等。
func (s *messageServiceImpl) MarkMessagesRead(ctx context.Context, userID uint64, req *dto.MarkAsReadReq) (int64, error) {
	modified, err := s.messageRepo.MarkRead(ctx, req.SenderID, userID, req.ProductID)
	if err != nil {
		return 0, err
	}
	if modified > 0 {
		s.publishEvent(ctx, req.SenderID, &dto.BusEvent{
			Type: dto.BusEventReceipt,
			Receipt: &dto.ReceiptDTO{
				SenderID:   req.SenderID,
				ReceiverID: userID,
				ProductID:  req.ProductID,
				Status:     consts.MessageStatusRead,
			},
		})
		s.invalidateUnreadCache(ctx, userID)
	}
	return modified, nil
}

// GetConversationList 从收到的消息集合折叠出会话列表并补全名称
func (s *messageServiceImpl) GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error) {
	received, err := s.messageRepo.ListReceived(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := BuildConversations(received)
	if len(conversations) == 0 {
		return conversations, nil
	}

	peerIDs := make([]uint64, 0, len(conversations))
	productIDs := make([]uint64, 0, len(conversations))
	for _, c := range conversations {
		peerIDs = append(peerIDs, c.PeerID)
		productIDs = append(productIDs, c.ProductID)
	}
	userNames := lookupUserNames(ctx, s.userRepo, peerIDs)
	productNames := lookupProductNames(ctx, s.productRepo, productIDs)

	for _, c := range conversations {
		c.PeerName = userNames[c.PeerID]
		c.ProductName = productNames[c.ProductID]
	}
	return conversations, nil
}

// BroadcastTyping 在会话专属频道广播输入状态，不落库
func (s *messageServiceImpl) BroadcastTyping(ctx context.Context, senderID uint64, req *dto.TypingReq) error {
	event := &dto.BusEvent{
		Type: dto.BusEventTyping,
		Typing: &dto.TypingSignalDTO{
			SenderID:  senderID,
			ProductID: req.ProductID,
		},
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	channel := TypingChannel(senderID, req.ReceiverID, req.ProductID)
	// 输入状态是即抛事件，总线不可用时只记日志不影响请求
	if err := redis.Publish(ctx, channel, data); err != nil {
		log.WarnContext(ctx, "输入状态广播失败", "channel", channel, "err", err)
	}
	return nil
}

// TypingChannel 输入状态频道名：im:typing:<发送者>:<接收者>:<商品>
func TypingChannel(senderID, receiverID, productID uint64) string {
	return fmt.Sprintf("%s%d:%d:%d", consts.IMTypingKey, senderID, receiverID, productID)
}

// UserChannel 用户个人频道名
func UserChannel(userID uint64) string {
	return consts.IMUserKey + strconv.FormatUint(userID, 10)
}

func (s *messageServiceImpl) publishEvent(ctx context.Context, targetUserID uint64, event *dto.BusEvent) {
	if err := event.Validate(); err != nil {
		log.ErrorContext(ctx, "refusing to publish malformed bus event", "err", err)
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal bus event failed", "err", err)
		return
	}
	if err = redis.Publish(ctx, UserChannel(targetUserID), data); err != nil {
		log.WarnContext(ctx, "publish bus event failed", "target", targetUserID, "err", err)
	}
}

func (s *messageServiceImpl) invalidateUnreadCache(ctx context.Context, userID uint64) {
	key := consts.UnreadSummaryKey + strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "invalidate unread cache failed", "user_id", userID, "err", err)
	}
}

func (s *messageServiceImpl) toMessageDTO(m *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		ProductID:  m.ProductID,
		Content:    m.Content,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}

func (s *messageServiceImpl) toMessageDTOs(ctx context.Context, messages []*mongo.Message) []*dto.MessageDTO {
	ids := make([]uint64, 0, len(messages)*2)
	for _, m := range messages {
		ids = append(ids, m.SenderID, m.ReceiverID)
	}
	names := lookupUserNames(ctx, s.userRepo, ids)

	res := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		d := s.toMessageDTO(m)
		d.SenderName = names[m.SenderID]
		d.ReceiverName = names[m.ReceiverID]
		res = append(res, d)
	}
	return res
}

// lookupUserNames 批量查用户名，缺失或查询失败统一回落为 Unknown
func lookupUserNames(ctx context.Context, userRepo repository.UserRepo, ids []uint64) map[uint64]string {
	names := make(map[uint64]string, len(ids))
	for _, id := range ids {
		names[id] = consts.UnknownUserName
	}
	users, err := userRepo.GetUserByIds(ctx, dedupIDs(ids))
	if err != nil {
		log.WarnContext(ctx, "lookup user names failed", "err", err)
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

// lookupProductNames 批量查商品名，缺失回落为 Unknown Product
func lookupProductNames(ctx context.Context, productRepo repository.ProductRepo, ids []uint64) map[uint64]string {
	names := make(map[uint64]string, len(ids))
	for _, id := range ids {
		names[id] = consts.UnknownProductName
	}
	products, err := productRepo.GetProductByIds(ctx, dedupIDs(ids))
	if err != nil {
		log.WarnContext(ctx, "lookup product names failed", "err", err)
		return names
	}
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}

func dedupIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	res := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
