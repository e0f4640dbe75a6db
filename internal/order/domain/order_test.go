package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Price: 185000, Quantity: 3}
	assert.Equal(t, int64(555000), item.LineTotal())
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusAwaitingVerification, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPaid, false},
		{StatusPending, StatusShipped, false},
		{StatusAwaitingVerification, StatusPaid, true},
		{StatusAwaitingVerification, StatusPending, true},
		{StatusAwaitingVerification, StatusCancelled, true},
		{StatusPaid, StatusProcessing, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.allowed, o.CanTransitionTo(tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusDelivered))
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusShipped))
}

func TestTransitionAllowedFor(t *testing.T) {
	order := &Order{UserID: "user-1", Status: StatusAwaitingVerification}

	// Only the owner may confirm payment arrived.
	assert.True(t, order.TransitionAllowedFor(RoleOwner, "staff-1", StatusPaid))
	assert.False(t, order.TransitionAllowedFor(RoleAdmin, "staff-2", StatusPaid))
	assert.False(t, order.TransitionAllowedFor(RoleCustomer, "user-1", StatusPaid))

	// Admins do not touch orders awaiting verification at all.
	assert.False(t, order.TransitionAllowedFor(RoleAdmin, "staff-2", StatusPending))
	assert.False(t, order.TransitionAllowedFor(RoleAdmin, "staff-2", StatusCancelled))

	// Customers may cancel their own unpaid order, not someone else's.
	assert.True(t, order.TransitionAllowedFor(RoleCustomer, "user-1", StatusCancelled))
	assert.False(t, order.TransitionAllowedFor(RoleCustomer, "user-2", StatusCancelled))

	// Customers submit payment proof on their own pending order.
	pending := &Order{UserID: "user-1", Status: StatusPending}
	assert.True(t, pending.TransitionAllowedFor(RoleCustomer, "user-1", StatusAwaitingVerification))
	assert.False(t, pending.TransitionAllowedFor(RoleCustomer, "user-2", StatusAwaitingVerification))

	// Customers never drive fulfilment.
	paid := &Order{UserID: "user-1", Status: StatusPaid}
	assert.False(t, paid.TransitionAllowedFor(RoleCustomer, "user-1", StatusProcessing))
	assert.False(t, paid.TransitionAllowedFor(RoleCustomer, "user-1", StatusCancelled))
	assert.True(t, paid.TransitionAllowedFor(RoleOwner, "staff-1", StatusProcessing))
	assert.True(t, paid.TransitionAllowedFor(RoleAdmin, "staff-2", StatusProcessing))

	// Invalid transitions stay invalid regardless of role.
	assert.False(t, order.TransitionAllowedFor(RoleOwner, "staff-1", StatusShipped))
}
