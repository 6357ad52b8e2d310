package service

import (
	"context"

	"ai-sales-be/pkg/events"
)

// IEventBus is what services need from the NATS publisher. The indirection
// keeps domain events testable without a broker.
type IEventBus interface {
	Publish(ctx context.Context, event events.Event) error
}
