package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodWallet     PaymentMethod = "WALLET"
	PaymentMethodNetBanking PaymentMethod = "NET_BANKING"
)

// PaymentDetails carries the method-specific fields a gateway needs.
// Only the fields for the chosen method are expected to be set.
type PaymentDetails struct {
	Method PaymentMethod

	CardNumber     string
	CardHolderName string
	ExpiryMonth    int
	ExpiryYear     int
	CVV            string

	UpiID string

	WalletType  string
	WalletPhone string

	BankCode string
}

type PaymentRequest struct {
	Amount   decimal.Decimal
	Currency string
	Details  PaymentDetails
}

type PaymentResultStatus string

const (
	PaymentResultSuccess PaymentResultStatus = "SUCCESS"
	PaymentResultFailed  PaymentResultStatus = "FAILED"
)

type PaymentResult struct {
	Status           PaymentResultStatus
	TransactionID    string
	GatewayOrderID   string
	GatewayPaymentID string
	FailureReason    string
	PaymentDate      time.Time
}

// PaymentGateway is the pluggable payment capability. A non-SUCCESS result
// is terminal for the attempt; callers never retry automatically.
type PaymentGateway interface {
	Process(ctx context.Context, req PaymentRequest) (PaymentResult, error)
}
