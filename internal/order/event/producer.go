package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zahrafashion/storefront/internal/order/domain"
	pkgkafka "github.com/zahrafashion/storefront/pkg/kafka"
)

// Kafka topic constants for order domain events.
const (
	TopicOrderCreated       = "storefront.order.created"
	TopicOrderStatusChanged = "storefront.order.status_changed"
	TopicOrderCancelled     = "storefront.order.cancelled"
)

const AggregateTypeOrder = "order"

const SourceStorefront = "storefront"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID         string `json:"order_id"`
	UserID          string `json:"user_id"`
	Status          string `json:"status"`
	ItemCount       int    `json:"item_count"`
	Subtotal        int64  `json:"subtotal"`
	ShippingCost    int64  `json:"shipping_cost"`
	TotalAmount     int64  `json:"total_amount"`
	Currency        string `json:"currency"`
	Courier         string `json:"courier"`
	ShippingService string `json:"shipping_service"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ActorRole string `json:"actor_role,omitempty"`
}

// OrderCancelledData is the payload for an order.cancelled event.
type OrderCancelledData struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason,omitempty"`
}

// Producer publishes order domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for order events.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data := OrderCreatedData{
		OrderID:         order.ID,
		UserID:          order.UserID,
		Status:          order.Status,
		ItemCount:       len(order.Items),
		Subtotal:        order.Subtotal,
		ShippingCost:    order.ShippingCost,
		TotalAmount:     order.TotalAmount,
		Currency:        order.Currency,
		Courier:         order.Courier,
		ShippingService: order.ShippingService,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID, oldStatus, newStatus, actorRole string) error {
	data := OrderStatusChangedData{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ActorRole: actorRole,
	}

	event, err := pkgkafka.NewEvent(TopicOrderStatusChanged, orderID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	return nil
}

// PublishOrderCancelled publishes an order.cancelled event.
func (p *Producer) PublishOrderCancelled(ctx context.Context, orderID, reason string) error {
	event, err := pkgkafka.NewEvent(TopicOrderCancelled, orderID, AggregateTypeOrder, SourceStorefront, OrderCancelledData{
		OrderID: orderID,
		Reason:  reason,
	})
	if err != nil {
		return fmt.Errorf("create order.cancelled event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCancelled, event); err != nil {
		return fmt.Errorf("publish order.cancelled event: %w", err)
	}

	return nil
}
