package mongo

import (
	"time"
)

// Message MongoDB 消息明细模型，消息内容与投递状态的唯一事实来源。
// 除 Status 外所有字段在写入后不可变，Status 只允许 sent -> delivered -> read 单向推进。
type Message struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	SenderID   uint64    `bson:"sender_id" json:"sender_id"`
	ReceiverID uint64    `bson:"receiver_id" json:"receiver_id"`
	ProductID  uint64    `bson:"product_id" json:"product_id"` // 会话按 (对手方, 商品) 维度划分
	Content    string    `bson:"content" json:"content"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
