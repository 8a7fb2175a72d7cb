package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodManual  PaymentMethod = "MANUAL"
	PaymentMethodVNPay   PaymentMethod = "VNPAY"
	PaymentMethodBalance PaymentMethod = "BALANCE"
)

// PaymentDirection tells whether a payment adds to or takes from the balance.
type PaymentDirection string

const (
	DirectionCredit PaymentDirection = "CREDIT"
	DirectionDebit  PaymentDirection = "DEBIT"
)

// DefaultVNPayDescription is used when a VNPay top-up carries no description.
const DefaultVNPayDescription = "Nap tien vao tai khoan"

type Payment struct {
	ID          int64            `dynamodbav:"payment_id"`
	UserID      int64            `dynamodbav:"user_id"`
	Amount      Money            `dynamodbav:"amount"`
	Description string           `dynamodbav:"description"`
	Method      PaymentMethod    `dynamodbav:"method"`
	Direction   PaymentDirection `dynamodbav:"direction"`
	Status      PaymentStatus    `dynamodbav:"status"`
	TxnRef      string           `dynamodbav:"txn_ref,omitempty"`
	BankCode    string           `dynamodbav:"bank_code,omitempty"`
	GatewayCode string           `dynamodbav:"gateway_code,omitempty"`
	CreatedAt   time.Time        `dynamodbav:"created_at"`
	UpdatedAt   time.Time        `dynamodbav:"updated_at"`

	User *User `dynamodbav:"-"`
}
