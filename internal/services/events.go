package services

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
}

// publishEvent publishes an auth event. Failures are logged and never
// returned, so a broker outage does not block authentication.
func publishEvent(ctx context.Context, w KafkaWriter, eventType string, userID int64, at time.Time) {
	evt := models.AuthEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: at.UTC(),
	}

	if w == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", evt.EventID, "type", evt.Type)
		return
	}

	data, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Errorw("Failed to marshal auth event for Kafka", "event_id", evt.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(userID, 10)),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish auth event to Kafka", "event_id", evt.EventID, "type", evt.Type, "error", err)
	} else {
		logger.Log.Infow("Auth event published to Kafka", "event_id", evt.EventID, "type", evt.Type, "user_id", userID)
	}
}
