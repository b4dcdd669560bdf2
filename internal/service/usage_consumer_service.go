package service

import (
	"context"
	"encoding/json"
	"log"

	"robotics-tutor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// usageConsumerService drains the in-process usage topic and records each
// event in the structured log. It is the local sink for analytics, the NATS
// mirror feeds external consumers.
type usageConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewUsageConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	appLogger logger.ILogger,
) IConsumerService {
	return &usageConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    appLogger,
	}
}

func (cs *usageConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *usageConsumerService) processMessage(msg *message.Message) {
	var envelope struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal usage event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("usage", "Event recorded: "+envelope.Type, envelope.Payload)
	msg.Ack()
}
