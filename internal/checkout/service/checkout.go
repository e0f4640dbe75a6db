// Package service implements the checkout flow: snapshotting the cart,
// picking address, courier and payment method, resolving shipping cost and
// submitting the order.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	addressdomain "github.com/zahrafashion/storefront/internal/address/domain"
	cartdomain "github.com/zahrafashion/storefront/internal/cart/domain"
	"github.com/zahrafashion/storefront/internal/checkout/domain"
	"github.com/zahrafashion/storefront/internal/checkout/repository"
	orderdomain "github.com/zahrafashion/storefront/internal/order/domain"
	ordersvc "github.com/zahrafashion/storefront/internal/order/service"
	paymentdomain "github.com/zahrafashion/storefront/internal/payment/domain"
	shippingdomain "github.com/zahrafashion/storefront/internal/shipping/domain"
	shippingsvc "github.com/zahrafashion/storefront/internal/shipping/service"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

// CartGateway reads and clears the user's cart. *cart service.CartService
// satisfies this.
type CartGateway interface {
	GetCart(ctx context.Context, userID string) (*cartdomain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// AddressReader loads a saved address, enforcing ownership.
type AddressReader interface {
	Get(ctx context.Context, userID, addressID string) (*addressdomain.Address, error)
}

// PaymentMethods checks that a payment method exists and is active.
type PaymentMethods interface {
	RequireAvailable(ctx context.Context, id string) (*paymentdomain.PaymentMethod, error)
}

// ShippingResolver resolves shipping costs. *shipping service.Resolver
// satisfies this.
type ShippingResolver interface {
	Resolve(ctx context.Context, courier string, dest shippingdomain.Destination, actualWeightGrams int) (*shippingsvc.Resolution, error)
}

// OrderCreator creates orders from submitted checkouts.
type OrderCreator interface {
	CreateOrder(ctx context.Context, input ordersvc.CreateOrderInput) (*orderdomain.Order, error)
}

// EventPublisher publishes checkout domain events. *event.Producer satisfies
// this.
type EventPublisher interface {
	PublishCheckoutStarted(ctx context.Context, session *domain.Session) error
	PublishCheckoutCompleted(ctx context.Context, session *domain.Session, orderID string) error
}

// CheckoutService implements the business logic for the checkout flow.
type CheckoutService struct {
	sessions repository.SessionRepository
	carts    CartGateway
	addrs    AddressReader
	payments PaymentMethods
	shipping ShippingResolver
	orders   OrderCreator
	producer EventPublisher
	logger   *slog.Logger
	ttl      time.Duration
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(
	sessions repository.SessionRepository,
	carts CartGateway,
	addrs AddressReader,
	payments PaymentMethods,
	shipping ShippingResolver,
	orders OrderCreator,
	producer EventPublisher,
	logger *slog.Logger,
	ttl time.Duration,
) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		carts:    carts,
		addrs:    addrs,
		payments: payments,
		shipping: shipping,
		orders:   orders,
		producer: producer,
		logger:   logger,
		ttl:      ttl,
	}
}

// Initiate starts a checkout session from the current cart contents. Items
// are snapshotted; later cart edits require a new session. An existing
// session for the user is replaced.
func (s *CheckoutService) Initiate(ctx context.Context, userID string) (*domain.Session, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("keranjang masih kosong")
	}

	items := make([]cartdomain.CartItem, len(cart.Items))
	copy(items, cart.Items)

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Mode:      domain.ModeDelivery,
		Items:     items,
		Currency:  cart.Currency,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if session.Currency == "" {
		session.Currency = "IDR"
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}

	if err := s.producer.PublishCheckoutStarted(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.started event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout session started",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID),
		slog.Int("item_count", len(items)),
	)

	return session, nil
}

// GetSession returns the user's current checkout session.
func (s *CheckoutService) GetSession(ctx context.Context, userID string) (*domain.Session, error) {
	return s.sessions.Get(ctx, userID)
}

// SetMode switches the session between delivery and keep. Switching always
// discards any resolved shipping cost.
func (s *CheckoutService) SetMode(ctx context.Context, userID, mode string) (*domain.Session, error) {
	if !domain.IsValidMode(mode) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid delivery mode %q", mode))
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session.Mode != mode {
		session.Mode = mode
		session.InvalidateShipping()
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// SetAddress snapshots a saved address into the session and invalidates any
// resolved shipping cost.
func (s *CheckoutService) SetAddress(ctx context.Context, userID, addressID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr, err := s.addrs.Get(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	session.Address = &domain.AddressSnapshot{
		AddressID:       addr.ID,
		RecipientName:   addr.RecipientName,
		Phone:           addr.Phone,
		Street:          addr.Street,
		ProvinceName:    addr.ProvinceName,
		CityName:        addr.CityName,
		DistrictID:      addr.DistrictID,
		DistrictName:    addr.DistrictName,
		SubdistrictID:   addr.SubdistrictID,
		SubdistrictName: addr.SubdistrictName,
		PostalCode:      addr.PostalCode,
	}
	session.InvalidateShipping()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// SetCourier selects the courier for the session and invalidates any
// resolved shipping cost.
func (s *CheckoutService) SetCourier(ctx context.Context, userID, courier string) (*domain.Session, error) {
	if !shippingdomain.IsSupportedCourier(courier) {
		return nil, apperrors.InvalidInput("unsupported courier: " + courier)
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	session.Courier = courier
	session.InvalidateShipping()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// ResolveShipping computes the shipping cost for the session's current
// courier and address. The attempt token is captured before the (possibly
// slow) rate lookup; if the session changed underneath, the stale result is
// discarded and the caller must retry against the new selection.
func (s *CheckoutService) ResolveShipping(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !session.RequiresShipping() {
		return nil, apperrors.InvalidInput("mode titip tidak memerlukan ongkir")
	}
	if session.Address == nil || !session.Address.CanShip() {
		return nil, apperrors.IncompleteAddress()
	}
	if session.Courier == "" {
		return nil, apperrors.InvalidInput("pilih kurir terlebih dahulu")
	}

	token := session.ShippingAttempt

	res, err := s.shipping.Resolve(ctx, session.Courier, session.Address.Destination(), session.TotalWeightGrams())
	if err != nil {
		return nil, err
	}

	// The lookup may have taken a while; re-read and only apply the result
	// if no address/courier/mode change happened in the meantime.
	fresh, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fresh.ShippingAttempt != token {
		s.logger.InfoContext(ctx, "discarding stale shipping resolution",
			slog.String("session_id", session.ID),
			slog.Int64("started_at_attempt", token),
			slog.Int64("current_attempt", fresh.ShippingAttempt),
		)
		return nil, apperrors.Conflict("pilihan pengiriman berubah saat ongkir dihitung, coba lagi")
	}

	fresh.ShippingQuotes = res.Quotes
	fresh.ShippingCost = res.Selected.Cost
	fresh.ShippingService = res.Selected.Service
	fresh.ShippingETD = res.Selected.ETD
	fresh.BillableWeightGrams = res.BillableWeight

	if err := s.save(ctx, fresh); err != nil {
		return nil, err
	}

	return fresh, nil
}

// SelectService picks a specific service from the resolved quotes instead of
// the default cheapest one.
func (s *CheckoutService) SelectService(ctx context.Context, userID, serviceName string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(session.ShippingQuotes) == 0 {
		return nil, apperrors.ShippingCostNotReady()
	}

	for _, q := range session.ShippingQuotes {
		if q.Service == serviceName {
			session.ShippingCost = q.Cost
			session.ShippingService = q.Service
			session.ShippingETD = q.ETD
			if err := s.save(ctx, session); err != nil {
				return nil, err
			}
			return session, nil
		}
	}

	return nil, apperrors.InvalidInput(fmt.Sprintf("layanan %q tidak tersedia untuk kurir ini", serviceName))
}

// SetPaymentMethod attaches an available payment method to the session.
func (s *CheckoutService) SetPaymentMethod(ctx context.Context, userID, methodID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	method, err := s.payments.RequireAvailable(ctx, methodID)
	if err != nil {
		return nil, err
	}

	session.PaymentMethodID = method.ID
	session.PaymentMethodName = method.Name

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Submit turns the session into an order. Delivery sessions must have an
// address and a resolved shipping cost; every session needs an available
// payment method. On success the session and cart are discarded.
func (s *CheckoutService) Submit(ctx context.Context, userID, notes string) (*orderdomain.Order, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(session.Items) == 0 {
		return nil, apperrors.InvalidInput("sesi checkout tidak memiliki barang")
	}

	var shippingAddr *orderdomain.Address
	if session.RequiresShipping() {
		if session.Address == nil || !session.Address.CanShip() {
			return nil, apperrors.IncompleteAddress()
		}
		if !session.ShippingResolved() {
			return nil, apperrors.ShippingCostNotReady()
		}
		shippingAddr = &orderdomain.Address{
			RecipientName:   session.Address.RecipientName,
			Phone:           session.Address.Phone,
			Street:          session.Address.Street,
			ProvinceName:    session.Address.ProvinceName,
			CityName:        session.Address.CityName,
			DistrictID:      session.Address.DistrictID,
			DistrictName:    session.Address.DistrictName,
			SubdistrictID:   session.Address.SubdistrictID,
			SubdistrictName: session.Address.SubdistrictName,
			PostalCode:      session.Address.PostalCode,
		}
	}

	if session.PaymentMethodID == "" {
		return nil, apperrors.PaymentMethodUnavailable("pilih metode pembayaran terlebih dahulu")
	}
	// Re-check at submit time so a method deactivated mid-checkout is caught.
	method, err := s.payments.RequireAvailable(ctx, session.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	items := make([]ordersvc.CreateOrderItemInput, len(session.Items))
	for i, item := range session.Items {
		items[i] = ordersvc.CreateOrderItemInput{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Size:        item.Size,
			Color:       item.Color,
			Price:       item.Price,
			Quantity:    item.Quantity,
			WeightGrams: item.EffectiveWeightGrams(),
		}
	}

	input := ordersvc.CreateOrderInput{
		UserID:            userID,
		Items:             items,
		DiscountAmount:    session.DiscountAmount,
		Currency:          session.Currency,
		ShippingAddress:   shippingAddr,
		PaymentMethodID:   method.ID,
		PaymentMethodName: method.Name,
		Notes:             notes,
	}
	if session.RequiresShipping() {
		input.ShippingCost = session.ShippingCost
		input.Courier = session.Courier
		input.ShippingService = session.ShippingService
		input.ShippingETD = session.ShippingETD
		input.BillableWeightGrams = session.BillableWeightGrams
	}

	order, err := s.orders.CreateOrder(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete checkout session after submit",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after submit",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishCheckoutCompleted(ctx, session, order.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.completed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout submitted",
		slog.String("session_id", session.ID),
		slog.String("order_id", order.ID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return order, nil
}

func (s *CheckoutService) save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save checkout session: %w", err)
	}
	return nil
}
