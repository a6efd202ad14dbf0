package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/redis"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/service"
	"fmt"
	log "log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// SubscribeHandler 会话级 SSE 推流。
// 订阅自己的用户频道并按 (对端, 商品) 过滤，另叠加对端的输入状态频道。
type SubscribeHandler struct{}

func NewSubscribeHandler() *SubscribeHandler {
	return &SubscribeHandler{}
}

func (s *SubscribeHandler) Subscribe(c *gin.Context) {
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

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, service.UnExpectedError)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	channels := []string{
		service.UserChannel(userID),
		service.TypingChannel(peerID, userID, productID),
	}
	pubsub := redis.Subscribe(c.Request.Context(), channels...)
	defer func() {
		_ = pubsub.Close()
	}()

	log.InfoContext(c.Request.Context(), "SSE 订阅已建立",
		"user_id", userID, "peer_id", peerID, "product_id", productID)

	// 立即冲刷响应头，让客户端确认流已建立
	flusher.Flush()

	redisCh := pubsub.Channel()
	done := c.Request.Context().Done()
	for {
		select {
		case msg, chOk := <-redisCh:
			if !chOk {
				return
			}
			if !s.matches(msg.Payload, userID, peerID, productID) {
				continue
			}
			_, _ = fmt.Fprintf(c.Writer, "event: message\ndata: %s\n\n", msg.Payload)
			flusher.Flush()
		case <-done:
			log.InfoContext(c.Request.Context(), "SSE 订阅已断开",
				"user_id", userID, "peer_id", peerID, "product_id", productID)
			return
		}
	}
}

// matches 只放行属于当前会话的事件，非法载荷直接丢弃
func (s *SubscribeHandler) matches(payload string, userID, peerID, productID uint64) bool {
	event := &dto.BusEvent{}
	if err := json.Unmarshal([]byte(payload), event); err != nil {
		log.Warn("丢弃非法总线事件", "err", err)
		return false
	}
	if err := event.Validate(); err != nil {
		log.Warn("丢弃非法总线事件", "err", err)
		return false
	}

	switch event.Type {
	case dto.BusEventMessage:
		m := event.Message
		if m.ProductID != productID {
			return false
		}
		return (m.SenderID == peerID && m.ReceiverID == userID) ||
			(m.SenderID == userID && m.ReceiverID == peerID)
	case dto.BusEventReceipt:
		r := event.Receipt
		if r.ProductID != productID {
			return false
		}
		return (r.SenderID == peerID && r.ReceiverID == userID) ||
			(r.SenderID == userID && r.ReceiverID == peerID)
	case dto.BusEventTyping:
		return event.Typing.SenderID == peerID && event.Typing.ProductID == productID
	}
	return false
}
