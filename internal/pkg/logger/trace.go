package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey Context 中追踪号的 Key，
// 由 TraceMiddleware 写入请求上下文、定时任务自行生成
const TraceIDKey = "trace_id"

// ContextHandler 把 ctx 里的 trace_id 附加到每条日志上
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
