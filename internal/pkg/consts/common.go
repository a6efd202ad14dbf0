package consts

const (
	RoleBuyer  = "Buyer"
	RoleFarmer = "Farmer"
	RoleAdmin  = "Admin"
)

// 消息投递状态，只允许单向推进 sent -> delivered -> read
const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// 通知摘要截断规则：超过 50 字符时保留前 47 位并追加省略号
const (
	SnippetMaxLen = 50
	SnippetCutLen = 47
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

const (
	MimePrefixImage = "image"
)

const (
	UnknownUserName    = "Unknown"
	UnknownProductName = "Unknown Product"
)
