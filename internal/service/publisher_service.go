package service

import (
	"context"
	"encoding/json"
	"log"

	"robotics-tutor-be/pkg/events"
	pktNats "robotics-tutor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishEvent(ctx context.Context, event events.Event) error
}

type publisherService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
}

func NewPublisherService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
) IPublisherService {
	return &publisherService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
	}
}

// PublishEvent fans the event out to the in-process bus and mirrors it to
// NATS. The NATS leg is auxiliary, its failure never fails the request.
func (p *publisherService) PublishEvent(ctx context.Context, event events.Event) error {
	envelope := map[string]interface{}{
		"type":        event.EventType(),
		"payload":     event.Payload(),
		"occurred_at": event.Timestamp(),
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		return err
	}

	if p.eventPublisher != nil {
		if err := p.eventPublisher.Publish(ctx, event); err != nil {
			log.Printf("[WARN] Failed to mirror event %s to NATS: %v", event.EventType(), err)
		}
	}

	return nil
}
