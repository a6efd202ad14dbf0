package dto

import "time"

// SendMessageReq 发送消息请求体
type SendMessageReq struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	ProductID  uint64 `json:"product_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
	// Status 兼容字段：由服务端强制为 sent，客户端传入值被忽略
	Status string `json:"status"`
}

// MessageDTO 消息明细响应，字段缺省时回落为零值
type MessageDTO struct {
	ID           string    `json:"id"`
	SenderID     uint64    `json:"sender_id"`
	ReceiverID   uint64    `json:"receiver_id"`
	SenderName   string    `json:"sender_name"`
	ReceiverName string    `json:"receiver_name"`
	ProductID    uint64    `json:"product_id"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// MarkAsReadReq 标记为已读请求，作用域为 (发送者, 当前用户, 商品) 三元组
type MarkAsReadReq struct {
	SenderID  uint64 `json:"sender_id" binding:"required"`
	ProductID uint64 `json:"product_id" binding:"required"`
}

// TypingReq 输入状态广播请求
type TypingReq struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	ProductID  uint64 `json:"product_id" binding:"required"`
}

// ConversationDTO 会话列表项，由消息集合派生，不落库
type ConversationDTO struct {
	PeerID          uint64    `json:"peer_id"`
	PeerName        string    `json:"peer_name"`
	ProductID       uint64    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

// NotificationDTO 未读通知条目，按 (发送者, 商品) 分组
type NotificationDTO struct {
	SenderID       uint64    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	ProductID      uint64    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	MessageSnippet string    `json:"message_snippet"`
	CreatedAt      time.Time `json:"created_at"`
	UnreadCount    int       `json:"unread_count"`
}

// UnreadSummaryDTO 未读汇总，total_unread 为所有分组计数之和
type UnreadSummaryDTO struct {
	TotalUnread   int                `json:"total_unread"`
	Notifications []*NotificationDTO `json:"notifications"`
}

// ReceiptDTO 投递/已读回执推送
type ReceiptDTO struct {
	SenderID   uint64 `json:"sender_id"`
	ReceiverID uint64 `json:"receiver_id"`
	ProductID  uint64 `json:"product_id"`
	Status     string `json:"status"`
}

// TypingSignalDTO 临时输入状态事件，不持久化，客户端 3 秒后自行过期
type TypingSignalDTO struct {
	SenderID  uint64 `json:"sender_id"`
	ProductID uint64 `json:"product_id"`
}
