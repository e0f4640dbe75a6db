package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zahrafashion/storefront/internal/order/domain"
	"github.com/zahrafashion/storefront/internal/order/repository"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

// EventPublisher publishes order domain events. *event.Producer satisfies this.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderStatusChanged(ctx context.Context, orderID, oldStatus, newStatus, actorRole string) error
	PublishOrderCancelled(ctx context.Context, orderID, reason string) error
}

// Actor identifies who is acting on an order.
type Actor struct {
	UserID string
	Role   string
}

// CreateOrderItemInput holds the parameters for an order line item.
type CreateOrderItemInput struct {
	ProductID   string
	Name        string
	Size        string
	Color       string
	Price       int64
	Quantity    int
	WeightGrams int
}

// CreateOrderInput holds the parameters for creating an order.
type CreateOrderInput struct {
	UserID              string
	Items               []CreateOrderItemInput
	DiscountAmount      int64
	ShippingCost        int64
	Currency            string
	Courier             string
	ShippingService     string
	ShippingETD         string
	BillableWeightGrams int
	ShippingAddress     *domain.Address
	PaymentMethodID     string
	PaymentMethodName   string
	Notes               string
}

// OrderService implements the business logic for order operations.
type OrderService struct {
	repo     repository.OrderRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewOrderService creates an order service.
func NewOrderService(repo repository.OrderRepository, producer EventPublisher, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateOrder creates a new pending order from the given input.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}
	if len(input.Currency) != 3 {
		return nil, apperrors.InvalidInput("currency must be a 3-letter ISO code")
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()

	var subtotal int64
	items := make([]domain.OrderItem, len(input.Items))
	for i, itemInput := range input.Items {
		items[i] = domain.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     orderID,
			ProductID:   itemInput.ProductID,
			Name:        itemInput.Name,
			Size:        itemInput.Size,
			Color:       itemInput.Color,
			Price:       itemInput.Price,
			Quantity:    itemInput.Quantity,
			WeightGrams: itemInput.WeightGrams,
		}
		subtotal += items[i].LineTotal()
	}

	totalAmount := subtotal - input.DiscountAmount + input.ShippingCost
	if totalAmount < 0 {
		totalAmount = 0
	}

	order := &domain.Order{
		ID:                  orderID,
		UserID:              input.UserID,
		Status:              domain.StatusPending,
		Items:               items,
		Subtotal:            subtotal,
		DiscountAmount:      input.DiscountAmount,
		ShippingCost:        input.ShippingCost,
		TotalAmount:         totalAmount,
		Currency:            strings.ToUpper(input.Currency),
		Courier:             input.Courier,
		ShippingService:     input.ShippingService,
		ShippingETD:         input.ShippingETD,
		BillableWeightGrams: input.BillableWeightGrams,
		ShippingAddress:     input.ShippingAddress,
		PaymentMethodID:     input.PaymentMethodID,
		PaymentMethodName:   input.PaymentMethodName,
		Notes:               input.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return order, nil
}

// GetOrder retrieves an order visible to the actor. Customers only see their
// own orders.
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleAdmin && order.UserID != actor.UserID {
		return nil, apperrors.Forbidden("order belongs to another user")
	}

	return order, nil
}

// ListOrders returns a filtered, paginated list of orders. Customers are
// always scoped to their own orders.
func (s *OrderService) ListOrders(ctx context.Context, actor Actor, filter repository.OrderFilter) ([]domain.Order, int, error) {
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleAdmin {
		filter.UserID = &actor.UserID
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus transitions the order to a new status, enforcing both the
// state machine and the actor's role.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, id, newStatus, reason string) (*domain.Order, error) {
	if !domain.IsValidStatus(newStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s", newStatus, strings.Join(domain.ValidStatuses(), ", ")))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(newStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot transition from %q to %q", order.Status, newStatus))
	}
	if !order.TransitionAllowedFor(actor.Role, actor.UserID, newStatus) {
		return nil, apperrors.Forbidden(fmt.Sprintf("role %q may not move this order to %q", actor.Role, newStatus))
	}

	oldStatus := order.Status
	cancelReason := ""
	if newStatus == domain.StatusCancelled {
		cancelReason = reason
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus, cancelReason, ""); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := s.producer.PublishOrderStatusChanged(ctx, id, oldStatus, newStatus, actor.Role); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
		slog.String("actor_role", actor.Role),
	)

	order.Status = newStatus
	if cancelReason != "" {
		order.CancelReason = cancelReason
	}

	return order, nil
}

// SubmitPaymentProof records a payment proof reference and moves the
// customer's pending order to awaiting_verification.
func (s *OrderService) SubmitPaymentProof(ctx context.Context, actor Actor, id, proofURL string) (*domain.Order, error) {
	if proofURL == "" {
		return nil, apperrors.InvalidInput("payment proof reference is required")
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.TransitionAllowedFor(actor.Role, actor.UserID, domain.StatusAwaitingVerification) {
		return nil, apperrors.Forbidden("payment proof can only be submitted for your own pending order")
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.StatusAwaitingVerification, "", proofURL); err != nil {
		return nil, fmt.Errorf("submit payment proof: %w", err)
	}

	if err := s.producer.PublishOrderStatusChanged(ctx, id, order.Status, domain.StatusAwaitingVerification, actor.Role); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	order.Status = domain.StatusAwaitingVerification
	order.PaymentProofURL = proofURL

	return order, nil
}

// VerifyPayment resolves an awaiting_verification order: accepted orders
// become paid, rejected ones fall back to pending so the customer can retry.
func (s *OrderService) VerifyPayment(ctx context.Context, actor Actor, id string, accept bool) (*domain.Order, error) {
	target := domain.StatusPaid
	if !accept {
		target = domain.StatusPending
	}
	return s.UpdateStatus(ctx, actor, id, target, "")
}

// CancelOrder cancels an order with a reason, validating both the transition
// and the actor.
func (s *OrderService) CancelOrder(ctx context.Context, actor Actor, id, reason string) (*domain.Order, error) {
	order, err := s.UpdateStatus(ctx, actor, id, domain.StatusCancelled, reason)
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishOrderCancelled(ctx, id, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.cancelled event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}
