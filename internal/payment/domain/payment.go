package domain

import "time"

// MethodType distinguishes how money changes hands.
type MethodType string

const (
	// MethodTransfer is a manual bank transfer verified by the shop owner.
	MethodTransfer MethodType = "transfer"
	// MethodCOD is cash on delivery.
	MethodCOD MethodType = "cod"
)

// Valid reports whether t is a known method type.
func (t MethodType) Valid() bool {
	return t == MethodTransfer || t == MethodCOD
}

// PaymentMethod is a way customers can pay for an order. Transfer methods
// carry the bank account the customer should send money to.
type PaymentMethod struct {
	ID            string     `json:"id"`
	Type          MethodType `json:"type"`
	Name          string     `json:"name"`
	BankName      string     `json:"bank_name,omitempty"`
	AccountNumber string     `json:"account_number,omitempty"`
	AccountHolder string     `json:"account_holder,omitempty"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
