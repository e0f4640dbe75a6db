package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zahrafashion/storefront/internal/checkout/domain"
	pkgkafka "github.com/zahrafashion/storefront/pkg/kafka"
)

// Kafka topic constants for checkout domain events.
const (
	TopicCheckoutStarted   = "storefront.checkout.started"
	TopicCheckoutCompleted = "storefront.checkout.completed"
)

const AggregateTypeCheckout = "checkout"

const SourceStorefront = "storefront"

// CheckoutStartedData is the payload for a checkout.started event.
type CheckoutStartedData struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	ItemCount int    `json:"item_count"`
	Subtotal  int64  `json:"subtotal"`
	Currency  string `json:"currency"`
}

// CheckoutCompletedData is the payload for a checkout.completed event.
type CheckoutCompletedData struct {
	SessionID    string `json:"session_id"`
	UserID       string `json:"user_id"`
	OrderID      string `json:"order_id"`
	Mode         string `json:"mode"`
	Courier      string `json:"courier,omitempty"`
	ShippingCost int64  `json:"shipping_cost"`
	TotalAmount  int64  `json:"total_amount"`
}

// Producer publishes checkout domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for checkout events.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCheckoutStarted publishes a checkout.started event.
func (p *Producer) PublishCheckoutStarted(ctx context.Context, session *domain.Session) error {
	data := CheckoutStartedData{
		SessionID: session.ID,
		UserID:    session.UserID,
		ItemCount: len(session.Items),
		Subtotal:  session.Subtotal(),
		Currency:  session.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutStarted, session.ID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.started event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutStarted, event); err != nil {
		return fmt.Errorf("publish checkout.started event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.started event",
		slog.String("session_id", session.ID),
		slog.String("user_id", session.UserID),
	)

	return nil
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, session *domain.Session, orderID string) error {
	data := CheckoutCompletedData{
		SessionID:    session.ID,
		UserID:       session.UserID,
		OrderID:      orderID,
		Mode:         session.Mode,
		Courier:      session.Courier,
		ShippingCost: session.ShippingCost,
		TotalAmount:  session.Total(),
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, session.ID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.String("session_id", session.ID),
		slog.String("order_id", orderID),
	)

	return nil
}
