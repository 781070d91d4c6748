package memory

import (
	"context"

	"linkedin-content-api/internal/domain/entity"
	"linkedin-content-api/internal/infrastructure/messaging"
	"linkedin-content-api/pkg/errors"
	"linkedin-content-api/pkg/logger"
)

// WritebackHandler 消费 memory_append 消息并落库。
// 处理失败时返回 error，由消费者按退避策略重试，超限进入 DLQ。
type WritebackHandler struct {
	service *Service
}

func NewWritebackHandler(service *Service) *WritebackHandler {
	return &WritebackHandler{service: service}
}

// Handle 实现 messaging.MessageHandler。
func (h *WritebackHandler) Handle(ctx context.Context, msg *messaging.Message) error {
	if h == nil || h.service == nil {
		return errors.New(errors.CodeInternalError, "writeback handler not configured")
	}

	var payload messaging.MemoryAppendMessage
	if err := msg.UnmarshalPayload(&payload); err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to decode memory append payload")
	}
	if payload.UserID == "" || len(payload.Records) == 0 {
		logger.Warn(ctx, "skipping empty memory append message", "message_id", msg.ID)
		return nil
	}

	records := make([]Record, 0, len(payload.Records))
	for _, r := range payload.Records {
		kind := entity.MemoryKind(r.Kind)
		if kind != entity.MemoryKindPreference && kind != entity.MemoryKindActivity {
			kind = entity.MemoryKindActivity
		}
		records = append(records, Record{Kind: kind, Memory: r.Memory})
	}

	if err := h.service.Remember(ctx, payload.UserID, records); err != nil {
		return err
	}
	logger.Info(ctx, "memory writeback stored",
		"user_id", payload.UserID,
		"records", len(records),
	)
	return nil
}
