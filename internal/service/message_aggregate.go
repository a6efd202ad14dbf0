package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/mongo"
	"fmt"
	"sort"
)

// convKey 会话分组键：对端 + 商品
func convKey(peerID, productID uint64) string {
	return fmt.Sprintf("%d_%d", peerID, productID)
}

// Snippet 截断消息摘要：超过上限时取前 47 个字符加省略号
func Snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= consts.SnippetMaxLen {
		return content
	}
	return string(runes[:consts.SnippetCutLen]) + "..."
}

// BuildConversations 把收到的消息集合折叠为会话列表。
// 每个 (发送者, 商品) 分组保留时间戳最大的一条作为 last_message，
// 时间戳相等时保留先遇到的那条；未读计数只统计 sent/delivered。
// 结果按最后消息时间倒序。
func BuildConversations(received []*mongo.Message) []*dto.ConversationDTO {
	groups := make(map[string]*dto.ConversationDTO)
	order := make([]string, 0)

	for _, m := range received {
		key := convKey(m.SenderID, m.ProductID)
		conv, ok := groups[key]
		if !ok {
			conv = &dto.ConversationDTO{
				PeerID:          m.SenderID,
				ProductID:       m.ProductID,
				LastMessage:     m.Content,
				LastMessageTime: m.CreatedAt,
			}
			groups[key] = conv
			order = append(order, key)
		} else if m.CreatedAt.After(conv.LastMessageTime) {
			conv.LastMessage = m.Content
			conv.LastMessageTime = m.CreatedAt
		}
		if m.Status != consts.MessageStatusRead {
			conv.UnreadCount++
		}
	}

	res := make([]*dto.ConversationDTO, 0, len(groups))
	for _, key := range order {
		res = append(res, groups[key])
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].LastMessageTime.After(res[j].LastMessageTime)
	})
	return res
}

// BuildUnreadSummary 把未读消息集合折叠为通知分组。
// 分组键与会话一致，摘要取组内最新一条并截断，
// total_unread 恒等于各分组计数之和。
func BuildUnreadSummary(unread []*mongo.Message) *dto.UnreadSummaryDTO {
	groups := make(map[string]*dto.NotificationDTO)
	order := make([]string, 0)

	for _, m := range unread {
		key := convKey(m.SenderID, m.ProductID)
		n, ok := groups[key]
		if !ok {
			n = &dto.NotificationDTO{
				SenderID:       m.SenderID,
				ProductID:      m.ProductID,
				MessageSnippet: Snippet(m.Content),
				CreatedAt:      m.CreatedAt,
			}
			groups[key] = n
			order = append(order, key)
		} else if m.CreatedAt.After(n.CreatedAt) {
			n.MessageSnippet = Snippet(m.Content)
			n.CreatedAt = m.CreatedAt
		}
		n.UnreadCount++
	}

	summary := &dto.UnreadSummaryDTO{
		Notifications: make([]*dto.NotificationDTO, 0, len(groups)),
	}
	for _, key := range order {
		n := groups[key]
		summary.TotalUnread += n.UnreadCount
		summary.Notifications = append(summary.Notifications, n)
	}
	sort.SliceStable(summary.Notifications, func(i, j int) bool {
		return summary.Notifications[i].CreatedAt.After(summary.Notifications[j].CreatedAt)
	})
	return summary
}
