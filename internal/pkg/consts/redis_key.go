package consts

const (
	// IMUserKey 用户个人事件频道，承载新消息与回执推送
	IMUserKey = "im:user:"
	// IMTypingKey 临时输入状态频道，格式 im:typing:<sender>:<receiver>:<product>
	IMTypingKey = "im:typing:"
	// UnreadSummaryKey 未读摘要缓存
	UnreadSummaryKey = "im:unread:summary:"
)
