package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService      service.MessageService
	notificationService service.NotificationService
}

func NewMessageHandler(messageService service.MessageService, notificationService service.NotificationService) *MessageHandler {
	return &MessageHandler{
		messageService:      messageService,
		notificationService: notificationService,
	}
}

// SendMessage 发送消息接口
func (s *MessageHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	// 从 Context 中获取中间件解析出的当前用户 ID
	senderID := c.GetUint64("user_id")

	res, err := s.messageService.SendMessage(c, senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetMessages 拉取与某个用户在某个商品下的往来消息
func (s *MessageHandler) GetMessages(c *gin.Context) {
	peerID, err := strconv.ParseUint(c.Param("peerId"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.messageService.GetMessages(c, userID, peerID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// MarkAsRead 标记已读接口
func (s *MessageHandler) MarkAsRead(c *gin.Context) {
	var req dto.MarkAsReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	modified, err := s.messageService.MarkMessagesRead(c, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"updated": modified})
}

// GetConversationList 获取会话列表
func (s *MessageHandler) GetConversationList(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := s.messageService.GetConversationList(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetUnreadSummary 未读通知汇总
func (s *MessageHandler) GetUnreadSummary(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := s.notificationService.GetUnreadSummary(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Typing 广播输入状态
func (s *MessageHandler) Typing(c *gin.Context) {
	var req dto.TypingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	senderID := c.GetUint64("user_id")

	if err := s.messageService.BroadcastTyping(c, senderID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
