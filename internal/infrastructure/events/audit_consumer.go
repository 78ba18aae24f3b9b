package events

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/domain"
	"github.com/driftroom/driftroom/internal/infrastructure/contracts"
	"github.com/driftroom/driftroom/internal/infrastructure/messaging"
)

// auditConsumer drains room lifecycle events into the audit log.
type auditConsumer struct {
	rabbitmq *messaging.RabbitMQ
	audit    domain.RoomAuditRepository
	logger   *zap.SugaredLogger
}

func NewAuditConsumer(rabbitmq *messaging.RabbitMQ, audit domain.RoomAuditRepository, logger *zap.SugaredLogger) *auditConsumer {
	return &auditConsumer{
		rabbitmq: rabbitmq,
		audit:    audit,
		logger:   logger,
	}
}

func (c *auditConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.AuditQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			c.logger.Warnw("failed to unmarshal amqp message", "error", err)
			return err
		}

		var payload messaging.RoomEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			c.logger.Warnw("failed to unmarshal room event", "error", err)
			return err
		}

		entry := c.toAuditLog(payload)
		if entry == nil {
			// Ack and skip rather than record it under a wrong label.
			c.logger.Warnw("skipping unknown room event type", "event_type", payload.EventType, "room", payload.RoomID)
			return nil
		}

		return c.audit.Log(ctx, entry)
	})
}

func (c *auditConsumer) toAuditLog(payload messaging.RoomEventData) *domain.RoomAuditLog {
	switch payload.EventType {
	case domain.AuditRoomCreated:
		return domain.NewRoomCreatedLog(payload.RoomID, payload.TTL())
	case domain.AuditRoomExpired:
		return domain.NewRoomExpiredLog(payload.RoomID, payload.MemberCount)
	case domain.AuditRoomDrained:
		return domain.NewRoomDrainedLog(payload.RoomID)
	case domain.AuditMemberJoined:
		return domain.NewMemberJoinedLog(payload.RoomID, payload.MemberCount)
	case domain.AuditMemberLeft:
		return domain.NewMemberLeftLog(payload.RoomID, payload.MemberCount)
	default:
		return nil
	}
}
