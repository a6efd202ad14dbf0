package dto

import "errors"

// 总线事件类型
const (
	BusEventMessage = "MESSAGE"
	BusEventReceipt = "RECEIPT"
	BusEventTyping  = "TYPING"
)

// BusEvent 事件总线载荷的显式 Schema。
// 所有进出 Redis 频道的事件都必须经过该结构编解码并在边界校验，
// 不允许鸭子类型的裸 map 进入核心数据模型。
type BusEvent struct {
	Type    string           `json:"type"`
	Message *MessageDTO      `json:"message,omitempty"`
	Receipt *ReceiptDTO      `json:"receipt,omitempty"`
	Typing  *TypingSignalDTO `json:"typing,omitempty"`
}

var ErrBusEventInvalid = errors.New("总线事件格式非法")

// Validate 校验事件类型与载荷是否匹配
func (e *BusEvent) Validate() error {
	switch e.Type {
	case BusEventMessage:
		if e.Message == nil {
			return ErrBusEventInvalid
		}
	case BusEventReceipt:
		if e.Receipt == nil {
			return ErrBusEventInvalid
		}
	case BusEventTyping:
		if e.Typing == nil {
			return ErrBusEventInvalid
		}
	default:
		return ErrBusEventInvalid
	}
	return nil
}
