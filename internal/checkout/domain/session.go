// Package domain holds the checkout session model.
package domain

import (
	"strings"
	"time"

	cartdomain "github.com/zahrafashion/storefront/internal/cart/domain"
	shippingdomain "github.com/zahrafashion/storefront/internal/shipping/domain"
)

// Delivery modes. "keep" means the shop holds the goods for pickup or a
// later combined shipment, so no address or shipping cost is required.
const (
	ModeDelivery = "delivery"
	ModeKeep     = "keep"
)

// IsValidMode reports whether mode is a known delivery mode.
func IsValidMode(mode string) bool {
	return mode == ModeDelivery || mode == ModeKeep
}

// AddressSnapshot is the delivery address frozen into the session when the
// customer picks it. Later edits to the saved address do not leak in.
type AddressSnapshot struct {
	AddressID       string `json:"address_id"`
	RecipientName   string `json:"recipient_name"`
	Phone           string `json:"phone"`
	Street          string `json:"street"`
	ProvinceName    string `json:"province_name"`
	CityName        string `json:"city_name"`
	DistrictID      string `json:"district_id"`
	DistrictName    string `json:"district_name"`
	SubdistrictID   string `json:"subdistrict_id"`
	SubdistrictName string `json:"subdistrict_name"`
	PostalCode      string `json:"postal_code"`
}

// Destination maps the snapshot onto the identifiers the shipping resolver
// understands.
func (a *AddressSnapshot) Destination() shippingdomain.Destination {
	return shippingdomain.Destination{
		SubdistrictID:   a.SubdistrictID,
		SubdistrictName: a.SubdistrictName,
		DistrictID:      a.DistrictID,
		DistrictName:    a.DistrictName,
	}
}

// CanShip reports whether the snapshot carries at least one area identifier.
func (a *AddressSnapshot) CanShip() bool {
	return strings.TrimSpace(a.SubdistrictID) != "" || strings.TrimSpace(a.DistrictID) != ""
}

// Session is an in-progress checkout. Items are snapshotted from the cart at
// initiation. ShippingAttempt is a monotonic token: every change that
// invalidates the resolved shipping cost bumps it, and a resolution result is
// only applied when the token it started from is still current.
type Session struct {
	ID                  string                 `json:"id"`
	UserID              string                 `json:"user_id"`
	Mode                string                 `json:"mode"`
	Items               []cartdomain.CartItem  `json:"items"`
	Currency            string                 `json:"currency"`
	Address             *AddressSnapshot       `json:"address,omitempty"`
	Courier             string                 `json:"courier,omitempty"`
	ShippingAttempt     int64                  `json:"shipping_attempt"`
	ShippingQuotes      []shippingdomain.Quote `json:"shipping_quotes,omitempty"`
	ShippingCost        int64                  `json:"shipping_cost"`
	ShippingService     string                 `json:"shipping_service,omitempty"`
	ShippingETD         string                 `json:"shipping_etd,omitempty"`
	BillableWeightGrams int                    `json:"billable_weight_grams"`
	DiscountAmount      int64                  `json:"discount_amount"`
	PaymentMethodID     string                 `json:"payment_method_id,omitempty"`
	PaymentMethodName   string                 `json:"payment_method_name,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
	ExpiresAt           time.Time              `json:"expires_at"`
}

// Subtotal sums the line totals in rupiah.
func (s *Session) Subtotal() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// TotalWeightGrams sums item weights, substituting the default weight for
// items the catalog never weighed.
func (s *Session) TotalWeightGrams() int {
	var total int
	for _, item := range s.Items {
		total += item.EffectiveWeightGrams() * item.Quantity
	}
	return total
}

// Total computes the amount due: subtotal minus discount plus shipping,
// floored at zero so an oversized discount never produces a negative bill.
func (s *Session) Total() int64 {
	total := s.Subtotal() - s.DiscountAmount + s.ShippingCost
	if total < 0 {
		return 0
	}
	return total
}

// RequiresShipping reports whether this session needs an address and a
// resolved shipping cost before it can be submitted.
func (s *Session) RequiresShipping() bool {
	return s.Mode != ModeKeep
}

// ShippingResolved reports whether a usable shipping cost is attached.
func (s *Session) ShippingResolved() bool {
	return s.ShippingService != "" && s.ShippingCost > 0
}

// InvalidateShipping discards any resolved shipping cost and bumps the
// attempt token so an in-flight resolution started before this change is
// discarded when it lands.
func (s *Session) InvalidateShipping() {
	s.ShippingAttempt++
	s.ShippingQuotes = nil
	s.ShippingCost = 0
	s.ShippingService = ""
	s.ShippingETD = ""
	s.BillableWeightGrams = 0
}
