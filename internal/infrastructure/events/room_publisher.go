package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/domain"
	"github.com/driftroom/driftroom/internal/infrastructure/contracts"
	"github.com/driftroom/driftroom/internal/infrastructure/messaging"
)

type RoomPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewRoomPublisher(rabbitmq *messaging.RabbitMQ) *RoomPublisher {
	return &RoomPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *RoomPublisher) publish(ctx context.Context, routingKey string, data messaging.RoomEventData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		RoomID: data.RoomID,
		Data:   payload,
	})
}

func (p *RoomPublisher) PublishRoomCreated(ctx context.Context, roomID string, ttl time.Duration) error {
	return p.publish(ctx, contracts.EventRoomCreated, messaging.RoomEventData{
		RoomID:     roomID,
		EventType:  domain.AuditRoomCreated,
		TTLSeconds: ttl.Seconds(),
		OccurredAt: time.Now(),
	})
}

func (p *RoomPublisher) PublishRoomExpired(ctx context.Context, roomID string, memberCount int) error {
	return p.publish(ctx, contracts.EventRoomExpired, messaging.RoomEventData{
		RoomID:      roomID,
		EventType:   domain.AuditRoomExpired,
		MemberCount: memberCount,
		OccurredAt:  time.Now(),
	})
}

func (p *RoomPublisher) PublishRoomDrained(ctx context.Context, roomID string) error {
	return p.publish(ctx, contracts.EventRoomDrained, messaging.RoomEventData{
		RoomID:     roomID,
		EventType:  domain.AuditRoomDrained,
		OccurredAt: time.Now(),
	})
}

func (p *RoomPublisher) PublishMemberJoined(ctx context.Context, roomID string, memberCount int) error {
	return p.publish(ctx, contracts.EventMemberJoined, messaging.RoomEventData{
		RoomID:      roomID,
		EventType:   domain.AuditMemberJoined,
		MemberCount: memberCount,
		OccurredAt:  time.Now(),
	})
}

func (p *RoomPublisher) PublishMemberLeft(ctx context.Context, roomID string, memberCount int) error {
	return p.publish(ctx, contracts.EventMemberLeft, messaging.RoomEventData{
		RoomID:      roomID,
		EventType:   domain.AuditMemberLeft,
		MemberCount: memberCount,
		OccurredAt:  time.Now(),
	})
}

// LifecycleSink adapts the publisher to the registry's sink contract.
// Publishes happen off the registry's lock; failures only log.
type LifecycleSink struct {
	publisher *RoomPublisher
	logger    *zap.SugaredLogger
}

func NewLifecycleSink(publisher *RoomPublisher, logger *zap.SugaredLogger) *LifecycleSink {
	return &LifecycleSink{publisher: publisher, logger: logger}
}

func (s *LifecycleSink) RoomCreated(roomID string, ttl time.Duration) {
	go func() {
		if err := s.publisher.PublishRoomCreated(context.Background(), roomID, ttl); err != nil {
			s.logger.Warnw("failed to publish room created", "room", roomID, "error", err)
		}
	}()
}

func (s *LifecycleSink) MemberJoined(roomID string, count int) {
	go func() {
		if err := s.publisher.PublishMemberJoined(context.Background(), roomID, count); err != nil {
			s.logger.Warnw("failed to publish member joined", "room", roomID, "error", err)
		}
	}()
}

func (s *LifecycleSink) MemberLeft(roomID string, count int) {
	go func() {
		if err := s.publisher.PublishMemberLeft(context.Background(), roomID, count); err != nil {
			s.logger.Warnw("failed to publish member left", "room", roomID, "error", err)
		}
	}()
}

func (s *LifecycleSink) RoomExpired(roomID string, memberCount int) {
	go func() {
		if err := s.publisher.PublishRoomExpired(context.Background(), roomID, memberCount); err != nil {
			s.logger.Warnw("failed to publish room expired", "room", roomID, "error", err)
		}
	}()
}

func (s *LifecycleSink) RoomDrained(roomID string) {
	go func() {
		if err := s.publisher.PublishRoomDrained(context.Background(), roomID); err != nil {
			s.logger.Warnw("failed to publish room drained", "room", roomID, "error", err)
		}
	}()
}
