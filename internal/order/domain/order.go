package domain

import "time"

// Order status constants. An order starts pending, moves to
// awaiting_verification when the customer submits payment proof, becomes
// paid once the shop verifies the money arrived, then follows fulfilment.
const (
	StatusPending              = "pending"
	StatusAwaitingVerification = "awaiting_verification"
	StatusPaid                 = "paid"
	StatusProcessing           = "processing"
	StatusShipped              = "shipped"
	StatusDelivered            = "delivered"
	StatusCancelled            = "cancelled"
)

// Actor roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleOwner    = "owner"
)

// Order represents a customer order.
type Order struct {
	ID                  string      `json:"id"`
	UserID              string      `json:"user_id"`
	Status              string      `json:"status"`
	Items               []OrderItem `json:"items"`
	Subtotal            int64       `json:"subtotal"`
	DiscountAmount      int64       `json:"discount_amount"`
	ShippingCost        int64       `json:"shipping_cost"`
	TotalAmount         int64       `json:"total_amount"`
	Currency            string      `json:"currency"`
	Courier             string      `json:"courier"`
	ShippingService     string      `json:"shipping_service"`
	ShippingETD         string      `json:"shipping_etd,omitempty"`
	BillableWeightGrams int         `json:"billable_weight_grams"`
	ShippingAddress     *Address    `json:"shipping_address,omitempty"`
	PaymentMethodID     string      `json:"payment_method_id"`
	PaymentMethodName   string      `json:"payment_method_name"`
	PaymentProofURL     string      `json:"payment_proof_url,omitempty"`
	Notes               string      `json:"notes,omitempty"`
	CancelReason        string      `json:"cancel_reason,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// OrderItem is a purchased product variant.
type OrderItem struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams"`
}

// LineTotal returns price times quantity.
func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Address is the delivery address frozen at order time.
type Address struct {
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

// ValidStatuses returns all valid order statuses.
func ValidStatuses() []string {
	return []string{
		StatusPending,
		StatusAwaitingVerification,
		StatusPaid,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transition can leave status.
func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// AllowedTransitions defines which status transitions are valid. Cancellation
// is reachable from every non-terminal status. A rejected payment proof sends
// the order back to pending.
func AllowedTransitions() map[string][]string {
	return map[string][]string{
		StatusPending:              {StatusAwaitingVerification, StatusCancelled},
		StatusAwaitingVerification: {StatusPaid, StatusPending, StatusCancelled},
		StatusPaid:                 {StatusProcessing, StatusCancelled},
		StatusProcessing:           {StatusShipped, StatusCancelled},
		StatusShipped:              {StatusDelivered, StatusCancelled},
		StatusDelivered:            {},
		StatusCancelled:            {},
	}
}

// CanTransitionTo checks if the order can transition to the target status.
func (o *Order) CanTransitionTo(target string) bool {
	allowed, ok := AllowedTransitions()[o.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionAllowedFor checks the transition against the acting role.
// Payment verification, that is any transition out of awaiting_verification
// driven by staff, asserts money actually arrived and is reserved for the
// owner. Admins drive fulfilment; customers may only hand in payment proof
// for their own order and cancel it while unpaid.
func (o *Order) TransitionAllowedFor(role, userID, target string) bool {
	if !o.CanTransitionTo(target) {
		return false
	}

	if role == RoleOwner {
		return true
	}

	if role == RoleAdmin {
		return o.Status != StatusAwaitingVerification && target != StatusPaid
	}

	if o.UserID != userID {
		return false
	}

	switch target {
	case StatusAwaitingVerification:
		return o.Status == StatusPending
	case StatusCancelled:
		return o.Status == StatusPending || o.Status == StatusAwaitingVerification
	default:
		return false
	}
}
