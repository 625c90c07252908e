package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

const publishTimeout = 5 * time.Second

// EventPublisher is satisfied by *event.KafkaProducerClient.
type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, payload event.PortfolioEventPayload) error
}

// publishAsync sends the event off the request path; a failed publish is
// logged and never fails the write.
func publishAsync(pub EventPublisher, log logger.Logger, eventType event.PortfolioEventType, id uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		err := pub.PublishPortfolioEvent(ctx, event.PortfolioEventPayload{
			EventType:   eventType,
			PortfolioID: id,
			OccurredAt:  time.Now().UTC(),
		})
		if err != nil {
			log.Error("Failed to publish Kafka portfolio event", err,
				zap.String("event_type", string(eventType)),
				zap.String("portfolio_id", id.String()))
		}
	}()
}

func invalidateCache(ctx context.Context, cache portfolio.Cache, log logger.Logger) {
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn("Failed to invalidate portfolio cache", zap.Error(err))
	}
}
